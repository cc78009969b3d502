// Package web embeds the portal's HTML templates and static assets so the
// binary ships without a separate asset directory.
package web

import "embed"

// Templates holds layouts, partials and pages under templates/.
//
//go:embed templates
var Templates embed.FS

// Static holds the stylesheet and script served below /static/.
//
//go:embed static
var Static embed.FS
