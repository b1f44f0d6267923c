package web

import (
	"github.com/jcarver/soloblog/internal/adapter/driving/web/templates"
	"github.com/jcarver/soloblog/internal/domain/model"
)

// displayTime is how post timestamps appear on rendered pages.
const displayTime = "Jan 2, 2006 15:04"

func toPostView(p model.Post) templates.PostView {
	return templates.PostView{
		ID:        p.ID,
		Title:     p.Title,
		BodyHTML:  RenderMarkdown(p.Content),
		ImageURL:  p.ImageURL,
		VideoURL:  p.VideoURL,
		CreatedAt: p.CreatedAt.Format(displayTime),
	}
}

func toPostViews(posts []model.Post) []templates.PostView {
	views := make([]templates.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, toPostView(p))
	}
	return views
}
