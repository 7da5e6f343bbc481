// Package attachment turns uploaded image files into data URIs suitable for
// inline storage on a record.
package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrTooLarge = errors.New("attachment exceeds the size limit")
	ErrEmpty    = errors.New("attachment is empty")
)

// Encoder sniffs and encodes uploads up to MaxBytes.
type Encoder struct {
	MaxBytes int64
}

func NewEncoder(maxBytes int64) *Encoder {
	return &Encoder{MaxBytes: maxBytes}
}

// Encode reads the whole upload and returns it as a base64 data URI.
// ok is false, with no error, when the content is not an image: such
// uploads are dropped without complaint.
func (e *Encoder) Encode(r io.Reader) (uri string, ok bool, err error) {
	b, err := io.ReadAll(io.LimitReader(r, e.MaxBytes+1))
	if err != nil {
		return "", false, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(b)) > e.MaxBytes {
		return "", false, ErrTooLarge
	}
	if len(b) == 0 {
		return "", false, ErrEmpty
	}

	mime := mimetype.Detect(b).String()
	mime, _, _ = strings.Cut(mime, ";")
	if !strings.HasPrefix(mime, "image/") {
		return "", false, nil
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), true, nil
}
