package reader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractPDF returns the plain text of every page, pages separated by a
// blank line, and the page count.
func extractPDF(ctx context.Context, p string) (string, int, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return "", 0, fmt.Errorf("read pdf: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat pdf: %w", err)
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return "", 0, fmt.Errorf("parse pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n\n"), count, nil
}
