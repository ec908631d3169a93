// Package memory provides in-memory implementations of the store interfaces.
// They enforce the same required-field and uniqueness constraints as the
// PostgreSQL stores and are used for local runs and tests.
package memory
