// Package db embebe los archivos SQL de migraciones para ejecutarlos
// desde el binario sin depender del filesystem en runtime.
package db

import "embed"

//go:embed migrations/*.sql
var MigrationFS embed.FS
