// Package shelfread retrieves a reader's book-review history from
// Goodreads' paginated HTML shelf pages and assembles it into a
// validated, exportable collection.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// http/, sqlite/).
package shelfread
