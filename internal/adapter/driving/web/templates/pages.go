package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Index renders the public feed, newest post first.
func Index(posts []PostView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		if len(posts) == 0 {
			hw.raw(`<p class="empty">No posts yet.</p>`)
		}

		for _, view := range posts {
			hw.raw(`<article class="post"><h2>`)
			hw.text(view.Title)
			hw.raw(`</h2><time>`)
			hw.text(view.CreatedAt)
			hw.raw(`</time>`)
			postMedia(hw, view)
			hw.raw(`<div class="post-body">`)
			hw.raw(view.BodyHTML) // sanitized by the markdown renderer
			hw.raw(`</div></article>`)
		}

		return hw.err
	})
}

// Admin renders the admin page. Without a signed-in user it shows the login
// form; with one it shows the create form and the manage list.
func Admin(username string, posts []PostView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		if username == "" {
			loginForm(hw)
			return hw.err
		}

		hw.raw(`<p class="whoami">Signed in as `)
		hw.text(username)
		hw.raw(`</p>`)

		hw.raw(`<section class="new-post"><h2>New post</h2>`)
		hw.raw(`<form method="post" action="/api/posts" enctype="multipart/form-data">`)
		hw.raw(`<input type="text" name="title" placeholder="Title">`)
		hw.raw(`<textarea name="content" placeholder="Write in markdown"></textarea>`)
		hw.raw(`<input type="file" name="media">`)
		hw.raw(`<button type="submit">Publish</button></form></section>`)

		hw.raw(`<section class="manage"><h2>Posts</h2>`)
		if len(posts) == 0 {
			hw.raw(`<p class="empty">No posts yet.</p>`)
		}
		for _, view := range posts {
			hw.raw(`<div class="manage-row"><span class="manage-title">`)
			hw.text(view.Title)
			hw.raw(`</span><time>`)
			hw.text(view.CreatedAt)
			hw.raw(`</time><a href="/admin/edit/`)
			hw.text(view.ID)
			hw.raw(`">edit</a>`)
			hw.raw(`<form method="post" action="/api/posts/`)
			hw.text(view.ID)
			hw.raw(`?_method=DELETE"><button type="submit">delete</button></form></div>`)
		}
		hw.raw(`</section>`)

		return hw.err
	})
}

// Edit renders the edit form for one post. A zero form (unknown id) renders
// empty rather than erroring.
func Edit(form PostForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<section class="edit-post"><h2>Edit post</h2>`)
		hw.raw(`<form method="post" action="/api/posts/`)
		hw.text(form.ID)
		hw.raw(`?_method=PUT" enctype="multipart/form-data">`)
		hw.raw(`<input type="text" name="title" value="`)
		hw.text(form.Title)
		hw.raw(`"><textarea name="content">`)
		hw.text(form.Content)
		hw.raw(`</textarea>`)
		hw.raw(`<label>Replace media<input type="file" name="media"></label>`)
		hw.raw(`<button type="submit">Save</button></form></section>`)

		return hw.err
	})
}

func loginForm(hw *htmlWriter) {
	hw.raw(`<section class="login"><h2>Sign in</h2>`)
	hw.raw(`<form method="post" action="/admin/login">`)
	hw.raw(`<input type="text" name="username" placeholder="Username" autocomplete="username">`)
	hw.raw(`<input type="password" name="password" placeholder="Password" autocomplete="current-password">`)
	hw.raw(`<button type="submit">Sign in</button></form></section>`)
}
