// Package web serves the server-rendered views of the blog: the article list
// and detail pages, the login and signup forms, and the static assets. The
// templates and assets are embedded in the binary, so the application ships
// as a single artifact.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// parseTemplates parses every embedded page template.
func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// StaticHandler serves the embedded static assets. Mounted at /static/,
// which the security policy keeps public.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embedded tree always contains static/; failing here means the
		// binary itself is broken.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
