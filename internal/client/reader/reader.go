// Package reader turns a cached book file into paragraphs for the text
// viewer. TXT files are read verbatim, EPUB spine documents are stripped of
// markup and PDF pages are converted to plain text.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophshelf/internal/common"
)

const (
	FormatTXT  = "txt"
	FormatEPUB = "epub"
	FormatPDF  = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// UnsupportedFormatError names the rejected extension.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("format .%s is not supported", e.Ext)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Document is an opened book.
type Document struct {
	Format     string
	Paragraphs []string
	// PageCount is set for PDF documents only.
	PageCount int
}

// Open extracts the text of the file at path, choosing the extractor by the
// file extension.
func Open(ctx context.Context, path string) (*Document, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && fi.IsDir()) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	doc := &Document{Format: ext}

	var text string
	switch ext {
	case FormatTXT:
		var b []byte
		b, err = os.ReadFile(path)
		text = string(b)
	case FormatEPUB:
		text, err = extractEPUB(ctx, path)
	case FormatPDF:
		text, doc.PageCount, err = extractPDF(ctx, path)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return nil, err
	}

	doc.Paragraphs = Paragraphs(text)
	return doc, nil
}

// Paragraphs normalizes line endings, splits text on blank lines and drops
// empty paragraphs.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
