package migrations

import "embed"

// Files holds the forward-only schema migrations, applied in version order
// by db.OpenSQLite.
//
//go:embed *.sql
var Files embed.FS
