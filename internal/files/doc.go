// Package files groups input discovery for the ETL: the filesystem
// abstraction (filesystem) and the data file locator built on it (locator).
package files
