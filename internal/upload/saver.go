// Package upload ingests the optional media file attached to a post mutation
// request. It stores the file under the upload directory and reports the
// declared MIME type and public path; classifying the file into a media slot
// is the caller's concern.
package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FieldName is the multipart form field carrying the uploaded file.
const FieldName = "media"

// maxMemory bounds how much of a multipart body is buffered in memory before
// spilling to temp files.
const maxMemory = 32 << 20

// SavedFile describes one stored upload.
type SavedFile struct {
	// MIMEType is the Content-Type the client declared for the part. It is
	// not verified against the file bytes.
	MIMEType string
	// PublicURL is the path the stored file is served at.
	PublicURL string
}

// Saver stores uploaded files under a directory served at /uploads/.
type Saver struct {
	dir string
}

// NewSaver returns a Saver writing into dir, creating it if needed.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Saver{dir: dir}, nil
}

// Dir returns the directory stored files are written to.
func (s *Saver) Dir() string {
	return s.dir
}

// FromRequest stores the request's "media" file part, if any. Requests
// without a file part, and plain non-multipart form posts, return nil, nil:
// an absent file is a normal outcome, not an error. The stored name is a
// fresh uuid keeping the original extension, so uploads can never collide or
// escape the upload directory.
func (s *Saver) FromRequest(r *http.Request) (*SavedFile, error) {
	file, header, err := r.FormFile(FieldName)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read media part: %w", err)
	}
	defer file.Close()

	name := uuid.NewString() + safeExt(header.Filename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close upload file: %w", err)
	}

	return &SavedFile{
		MIMEType:  header.Header.Get("Content-Type"),
		PublicURL: "/uploads/" + name,
	}, nil
}

// ParseForm parses the request body as either a multipart or url-encoded
// form, buffering large multipart bodies to disk.
func ParseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// safeExt returns the client filename's extension when it is short and plain
// ASCII, and nothing otherwise. The stored basename is always our own uuid.
func safeExt(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, ch := range ext[1:] {
		valid := (ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9')
		if !valid {
			return ""
		}
	}
	return ext
}
