// Package web holds the Transcriber Page: its template and static assets,
// embedded into the binary.
package web

import "embed"

// Assets contains templates/index.html and everything under static/.
//
//go:embed templates/*.html static/*
var Assets embed.FS
