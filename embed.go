// Package contacts provides embedded runtime resources.
package contacts

import (
	"embed"
	"io/fs"
)

//go:embed templates/config.yaml
var rawTemplates embed.FS

// Templates is the embedded templates filesystem with the "templates/" prefix stripped.
var Templates = mustSub(rawTemplates, "templates")

// ConfigTemplate returns the commented default configuration file.
func ConfigTemplate() ([]byte, error) {
	return fs.ReadFile(Templates, "config.yaml")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
