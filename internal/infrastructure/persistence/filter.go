package persistence

import (
	"strings"

	"github.com/facturacion/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var productOrderColumns = map[string]bool{
	"code":       true,
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

var batchOrderColumns = map[string]bool{
	"purchase_date":   true,
	"expiration_date": true,
	"created_at":      true,
	"updated_at":      true,
}

// applyFilter applies pagination and ordering. OrderBy is checked against the
// allowed column set so user input never reaches the ORDER BY clause raw.
func applyFilter(query *gorm.DB, filter shared.Filter, orderColumns map[string]bool) *gorm.DB {
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	if filter.OrderBy != "" && orderColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order("created_at DESC")
}
