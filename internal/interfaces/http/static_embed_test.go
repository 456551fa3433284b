package http

import (
	"io/fs"
	"testing"
)

func TestEmbeddedStaticFiles(t *testing.T) {
	for _, name := range []string{
		"static/index.html",
		"static/css/style.css",
		"static/js/app.js",
		"static/js/websocket.js",
	} {
		if _, err := fs.ReadFile(staticFiles, name); err != nil {
			t.Fatalf("expected embedded asset %s, got error: %v", name, err)
		}
	}
}
