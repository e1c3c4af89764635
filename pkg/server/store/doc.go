// Package store provides storage abstractions for the fruits server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
//
// # Available Stores
//
//   - FruitsStore: fruit records (list, get, create, update, delete, seed)
//   - HealthStore: database connectivity checks
//
// Implementations live in the gorm (PostgreSQL, SQLite) and mongo
// subpackages. UnavailableStore is used when the database could not be
// opened at startup.
//
// # Usage
//
//	fruits := gorm.NewFruitsStore(db)
//	fruit, err := fruits.Get(ctx, id)
//	if err != nil {
//	    // malformed id or driver failure
//	}
//	if fruit == nil {
//	    // no record with that id
//	}
package store
