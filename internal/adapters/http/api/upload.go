package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/multimodal/internal/domain/media"
)

// uploadLimits bounds multipart parsing.
type uploadLimits struct {
	maxBytes int64
	memory   int64
}

var errMissingFile = errors.New("missing form file")

// parseMultipart parses r as multipart/form-data.
func (l uploadLimits) parseMultipart(op string, r *http.Request) error {
	if err := r.ParseMultipartForm(l.memory); err != nil {
		return classifyBodyError(op, err)
	}
	return nil
}

// parseForm parses r as multipart/form-data, falling back to an ordinary
// urlencoded form when the body is not multipart.
func (l uploadLimits) parseForm(op string, r *http.Request) error {
	err := r.ParseMultipartForm(l.memory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return classifyBodyError(op, err)
	}
	return nil
}

// cleanupForm releases temp files created by the multipart parser.
func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// formUpload reads the first file sent under field. It returns nil when the
// field is absent.
func formUpload(r *http.Request, field string) (*media.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return &media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// requiredUpload is formUpload for endpoints that cannot work without a file.
func requiredUpload(r *http.Request, field string) (media.Upload, error) {
	u, err := formUpload(r, field)
	if err != nil {
		return media.Upload{}, err
	}
	if u == nil {
		return media.Upload{}, fmt.Errorf("%w %q", errMissingFile, field)
	}
	return *u, nil
}

// optionalValue returns the form value for key, or nil when it was not sent.
func optionalValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
