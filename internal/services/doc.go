// Package services wires the ETL together: it opens the database session,
// walks the input directories and runs each file through its processor inside
// its own transaction.
//
// Song files are loaded before log files so the songplay lookup can see every
// song of the run.
package services
