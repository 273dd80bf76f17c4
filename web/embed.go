// Package web provides embedded static assets (CSS) served at /static/.
// Everything the site needs ships inside the binary; there is no asset
// pipeline.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
