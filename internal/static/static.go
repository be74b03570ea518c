// Package static embeds the site templates and browser assets.
package static

import (
	"embed"
	"io/fs"
)

// Templates holds the HTML templates for the landing pages.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

//go:embed assets/css/*.css assets/js/*.js
var assets embed.FS

// Assets returns the browser assets rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
