// Package testdb provides utilities specifically for database integration tests.
// Tests that need PostgreSQL call GetTestDBWithT, which skips the test when no
// database URL is configured, and isolate their writes with WithTx.
package testdb
