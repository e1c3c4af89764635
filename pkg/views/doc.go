// Package views renders the server-side HTML pages.
//
// Templates use html/template. layout.html defines the "layout" template,
// which calls {{template "content" .}}; each page (fruits/index.html,
// fruits/new.html, fruits/edit.html, fruits/show.html) defines "content".
// Each page is parsed together with the layout into its own template set.
//
// By default the templates compiled into the binary are used. A directory
// can be used instead, optionally with Watch for hot reload:
//
//	r, err := views.New(os.DirFS(dir))
//	go views.Watch(ctx, r, dir, logger)
package views
