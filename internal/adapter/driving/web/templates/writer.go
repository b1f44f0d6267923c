// Package templates holds the templ components for the public feed and admin
// pages. Components are composed by hand with templ.ComponentFunc; pages stay
// small enough that a generator step would cost more than it saves.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PostView is the render-ready shape of a post: the markdown body already
// converted to sanitized HTML and the timestamp formatted for display.
type PostView struct {
	ID        string
	Title     string
	BodyHTML  string
	ImageURL  string
	VideoURL  string
	CreatedAt string
}

// PostForm carries the fields pre-filled into the edit form. The zero value
// renders an empty form.
type PostForm struct {
	ID      string
	Title   string
	Content string
}

// htmlWriter accumulates the first write error so component bodies read as a
// flat sequence of emits instead of an error check per tag.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw emits s verbatim. Only for trusted markup and already-sanitized HTML.
func (hw *htmlWriter) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

// text emits s with HTML escaping applied.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// component renders a nested component in place.
func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err == nil && c != nil {
		hw.err = c.Render(ctx, hw.w)
	}
}
