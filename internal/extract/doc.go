// Package extract turns raw NDJSON input lines into sparkify records.
//
// Song files carry one song record (the first non-blank line is used). Log
// files carry one activity event per line; only NextSong events describe
// song plays and feed the time, user and songplay tables.
//
// Nothing in this package touches the database.
package extract
