package http

import (
	"embed"
	"io/fs"
)

// staticFiles хранит ресурсы UI внутри бинарника
//
//go:embed static
var staticFiles embed.FS

// StaticFS возвращает ресурсы UI без префикса static/
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("failed to initialize embedded static assets: " + err.Error())
	}
	return sub
}
