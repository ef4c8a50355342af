// Package statio converts between the callback/event protocol of an external
// statistical-file engine (SAS, SPSS, Stata, and SAS transport files) and a
// typed, columnar in-memory table carried as an Arrow IPC payload with a
// sibling metadata record.
//
// The read path accumulates engine parse events into per-column Arrow arrays
// (see the ingest package); the write path maps a columnar table back onto
// the engine's variable-declaration and row-insertion protocol (see the
// egress package).  The engine itself owns binary layouts and character-set
// conversion; it is reached only through the interfaces in the engine
// package.
package statio
