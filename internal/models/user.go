// Package models contains data structures for the application's domain models.
package models

// User represents an account in the Inkwell application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"-"`
	SoftDelete
}
