package model

import "strings"

// MediaSlots holds the two mutually exclusive media fields of a post. At most
// one of ImageURL and VideoURL is ever non-empty; ClassifyMedia is the only
// producer of populated slots.
type MediaSlots struct {
	ImageURL string
	VideoURL string
}

// IsEmpty reports whether neither slot is populated.
func (m MediaSlots) IsEmpty() bool {
	return m.ImageURL == "" && m.VideoURL == ""
}

// ClassifyMedia decides which slot a freshly stored upload fills, based on the
// MIME type the client declared for it. An "image/*" type fills the image
// slot, a "video/*" type fills the video slot. Any other type yields empty
// slots: the file stays on disk but is never linked from the post. That silent
// drop is deliberate compatibility with the existing deployment, not an
// oversight of error handling.
func ClassifyMedia(mimeType, publicURL string) MediaSlots {
	switch {
	case strings.HasPrefix(mimeType, "image"):
		return MediaSlots{ImageURL: publicURL}
	case strings.HasPrefix(mimeType, "video"):
		return MediaSlots{VideoURL: publicURL}
	default:
		return MediaSlots{}
	}
}
