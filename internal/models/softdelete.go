// Package models contains data structures for the application's domain models.
package models

import "time"

// SoftDelete carries the lifecycle fields shared by every entity. Deletion is
// a flag flip, never a row removal; visibility filtering happens explicitly in
// the repository layer, not through an implicit query scope.
type SoftDelete struct {
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

// MarkDeleted flips the record into the soft-deleted state.
func (s *SoftDelete) MarkDeleted(now time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &now
}

// Restore reverses a soft delete, clearing both lifecycle fields.
func (s *SoftDelete) Restore() {
	s.IsDeleted = false
	s.DeletedAt = nil
}
