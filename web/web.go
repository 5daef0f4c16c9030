// Package web embeds the HTML templates and static assets, so the binary
// runs from any working directory.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templateFiles embed.FS

//go:embed all:static
var staticFiles embed.FS

// Templates returns the template directory as the root of an fs.FS.
func Templates() fs.FS {
	return mustSub(templateFiles, "templates")
}

// Static returns the static asset directory as the root of an fs.FS.
func Static() fs.FS {
	return mustSub(staticFiles, "static")
}

// mustSub panics only if dir is not a valid path, which the constant
// arguments above rule out.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
