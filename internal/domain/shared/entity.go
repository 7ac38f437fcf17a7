package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lifecycle carries the soft-delete state shared by catalog entities.
// It is embedded by value so unrelated entities stay decoupled while the
// activation behavior lives in one place.
type Lifecycle struct {
	Active bool `gorm:"not null;default:true"`
}

// NewLifecycle returns an active lifecycle
func NewLifecycle() Lifecycle {
	return Lifecycle{Active: true}
}

// IsActive reports whether the record is active (not soft-deleted)
func (l *Lifecycle) IsActive() bool {
	return l.Active
}

// Deactivate marks the record as inactive (soft delete)
func (l *Lifecycle) Deactivate() {
	l.Active = false
}

// Reactivate marks the record as active again
func (l *Lifecycle) Reactivate() {
	l.Active = true
}
