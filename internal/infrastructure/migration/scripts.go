package migration

import (
	"embed"
	"io/fs"
)

//go:embed scripts/goose/*.sql
var gooseScripts embed.FS

//go:embed scripts/migrate/*.sql
var migrateScripts embed.FS

// GooseScripts returns the goose scripts rooted at their directory.
func GooseScripts() fs.FS {
	sub, err := fs.Sub(gooseScripts, "scripts/goose")
	if err != nil {
		panic(err)
	}
	return sub
}

// MigrateScripts returns the golang-migrate up/down pairs rooted at their directory.
func MigrateScripts() fs.FS {
	sub, err := fs.Sub(migrateScripts, "scripts/migrate")
	if err != nil {
		panic(err)
	}
	return sub
}
