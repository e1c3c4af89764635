// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// The same implementation serves PostgreSQL and SQLite; the dialect is
// chosen by the caller when opening the *gorm.DB (see pkg/db). Identifiers
// are UUID strings assigned by the model's BeforeCreate hook.
package gorm
