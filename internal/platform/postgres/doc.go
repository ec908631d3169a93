// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles database connections, schema migrations, query execution, and
// the mapping between domain entities and database records.
//
// Required fields are bound through NULLIF so that an empty value reaches the
// database as NULL and fails the column's NOT NULL constraint, which MapError
// reports as store.ErrInvalidEntity.
package postgres
