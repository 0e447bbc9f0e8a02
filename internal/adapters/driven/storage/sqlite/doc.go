// Package sqlite implements the RunStore port on an embedded SQLite
// database. Extraction results are serialized to JSON and keyed by a
// content fingerprint, so repeated checks of the same report text can
// reuse a prior run instead of parsing again. The schema is managed
// through embedded SQL migrations.
package sqlite
