package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps page content in the shared HTML shell.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		hw.text(title)
		hw.raw(`</title><link rel="stylesheet" href="/static/style.css"></head><body>`)
		hw.raw(`<header><a class="site-title" href="/">soloblog</a><nav><a href="/admin">admin</a></nav></header>`)
		hw.raw(`<main>`)
		hw.component(ctx, content)
		hw.raw(`</main></body></html>`)

		return hw.err
	})
}

// postMedia emits the media element for whichever slot is populated. The
// slots are mutually exclusive, so at most one element renders.
func postMedia(hw *htmlWriter, view PostView) {
	if view.ImageURL != "" {
		hw.raw(`<img class="post-media" src="`)
		hw.text(view.ImageURL)
		hw.raw(`" alt="">`)
	}
	if view.VideoURL != "" {
		hw.raw(`<video class="post-media" src="`)
		hw.text(view.VideoURL)
		hw.raw(`" controls></video>`)
	}
}
