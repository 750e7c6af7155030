/*
Package history keeps a SQLite journal of sentence generation runs: which
inputs and settings were used and which sentences were printed. It stores the
output of a run only; trained models are never persisted.

Any database/sql SQLite driver can be used; the command line tool registers
modernc.org/sqlite by default and github.com/mattn/go-sqlite3 with the
cgo_sqlite build tag.
*/
package history
