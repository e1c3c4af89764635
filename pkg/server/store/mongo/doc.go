// Package mongo provides MongoDB implementations of the store interfaces.
//
// Fruits are kept as documents in the "fruits" collection with the field
// names name, color and readyToEat. Identifiers are ObjectIDs exposed as
// 24-character hex strings; anything else is rejected as malformed before
// the database is contacted.
package mongo
