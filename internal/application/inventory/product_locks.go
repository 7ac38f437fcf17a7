package inventory

import (
	"sync"

	"github.com/google/uuid"
)

// productLocks serializes batch writes per product so that the
// read-compare-write sequence behind the price variance check cannot
// interleave for the same product.
type productLocks struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func newProductLocks() *productLocks {
	return &productLocks{}
}

// Lock acquires the mutex for the given product, creating it on first use.
// The returned function releases it.
func (p *productLocks) Lock(productID uuid.UUID) func() {
	value, _ := p.locks.LoadOrStore(productID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
