// Package legal embeds the default privacy policy and terms of service.
package legal

import (
	"embed"
	"io/fs"
)

//go:embed docs/*.md
var docs embed.FS

// Docs returns the built-in documents, named <type>.md.
func Docs() fs.FS {
	sub, err := fs.Sub(docs, "docs")
	if err != nil {
		panic(err)
	}
	return sub
}
