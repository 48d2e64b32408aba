// Package testing provides integration test helpers: a shared PostgreSQL
// container, throwaway databases with the sparkify tables, and a ready-wired
// ETL service. Import it as testhelpers.
package testing
