// Package metadata persists small client-side values (bearer token, last
// login email, view theme) in the SQLite "metadata" table.
//
// The repository works on a dbx.DBTX so the same code runs against *sql.DB
// or inside a dbx.WithTx transaction.
package metadata
