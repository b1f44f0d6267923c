package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMedia(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		want     MediaSlots
	}{
		{"jpeg fills image slot", "image/jpeg", MediaSlots{ImageURL: "/uploads/f.jpg"}},
		{"png fills image slot", "image/png", MediaSlots{ImageURL: "/uploads/f.jpg"}},
		{"mp4 fills video slot", "video/mp4", MediaSlots{VideoURL: "/uploads/f.jpg"}},
		{"webm fills video slot", "video/webm", MediaSlots{VideoURL: "/uploads/f.jpg"}},
		{"pdf fills neither", "application/pdf", MediaSlots{}},
		{"text fills neither", "text/plain", MediaSlots{}},
		{"empty type fills neither", "", MediaSlots{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMedia(tt.mimeType, "/uploads/f.jpg")
			assert.Equal(t, tt.want, got)
			assert.False(t, got.ImageURL != "" && got.VideoURL != "", "slots must be mutually exclusive")
		})
	}
}

func TestMediaSlots_IsEmpty(t *testing.T) {
	assert.True(t, MediaSlots{}.IsEmpty())
	assert.False(t, MediaSlots{ImageURL: "/uploads/a.png"}.IsEmpty())
	assert.False(t, MediaSlots{VideoURL: "/uploads/a.mp4"}.IsEmpty())
}
