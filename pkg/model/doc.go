// Package model defines the GORM models of the fruits database.
//
// # Models
//
//   - Fruit: one fruit record, stored in the fruits table
//
// The MongoDB store does not use these models; it maps documents in the
// fruits collection directly (see pkg/server/store/mongo).
package model
