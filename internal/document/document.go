// Package document converts uploaded résumé files into plain text.
//
// Decoding failures are reported as *DecodeError and are distinct from a
// successfully decoded document that simply carries little text.
package document

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxSize is used when no positive size limit is given.
const DefaultMaxSize int64 = 5 << 20

const (
	mimeText = "text/plain"
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZIP  = "application/zip"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format: only txt, pdf and docx are allowed")
	ErrFormatMismatch    = errors.New("document content does not match its extension")
	ErrTooLarge          = errors.New("document exceeds the size limit")
	ErrEmpty             = errors.New("document is empty")
)

// DecodeError wraps any failure to turn a document into text.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to read document %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Document is a decoded résumé.
type Document struct {
	Name string
	MIME string
	Text string
}

type decoder struct {
	accepts []string
	decode  func(data []byte, params map[string]string) (string, error)
}

var decoders = map[string]decoder{
	".txt":  {accepts: []string{mimeText}, decode: decodeText},
	".pdf":  {accepts: []string{mimePDF}, decode: decodePDF},
	".docx": {accepts: []string{mimeDOCX, mimeZIP}, decode: decodeDOCX},
}

// ReadFile loads and decodes the document at path.
func ReadFile(path string, limit int64) (*Document, error) {
	limit = effectiveLimit(limit)

	stat, err := os.Stat(path)
	if err != nil {
		return nil, &DecodeError{Name: path, Err: err}
	}
	if stat.Size() > limit {
		return nil, &DecodeError{Name: path, Err: fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, stat.Size(), limit)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Name: path, Err: err}
	}

	return Decode(path, data, limit)
}

// Decode converts data into text according to the extension of name. The
// sniffed MIME type has to agree with the extension.
func Decode(name string, data []byte, limit int64) (*Document, error) {
	limit = effectiveLimit(limit)

	ext := strings.ToLower(filepath.Ext(name))
	dec, ok := decoders[ext]
	if !ok {
		return nil, &DecodeError{Name: name, Err: ErrUnsupportedFormat}
	}

	if len(data) == 0 {
		return nil, &DecodeError{Name: name, Err: ErrEmpty}
	}
	if int64(len(data)) > limit {
		return nil, &DecodeError{Name: name, Err: fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), limit)}
	}

	detected := mimetype.Detect(data)
	if !isA(detected, dec.accepts...) {
		return nil, &DecodeError{Name: name, Err: fmt.Errorf("%w: %s detected for %s", ErrFormatMismatch, detected.String(), ext)}
	}

	// params carry the sniffed charset of text documents
	_, params, _ := mime.ParseMediaType(detected.String())

	text, err := dec.decode(data, params)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}

	return &Document{
		Name: name,
		MIME: detected.String(),
		Text: text,
	}, nil
}

// isA reports whether m or one of its parents is any of the expected types,
// so text/csv still counts as text/plain.
func isA(m *mimetype.MIME, expected ...string) bool {
	for ; m != nil; m = m.Parent() {
		for _, e := range expected {
			if m.Is(e) {
				return true
			}
		}
	}
	return false
}

func effectiveLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultMaxSize
	}
	return limit
}
