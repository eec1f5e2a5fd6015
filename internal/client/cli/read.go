package cli

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/viewmodels"
)

// basePageParagraphs is the page length at the default typography.
const basePageParagraphs = 12

var errNothingOpen = errors.New("no book is open, use 'read <n>'")

// readingSession is the book open in the terminal reader. pos is the first
// paragraph of the page on screen.
type readingSession struct {
	title      string
	path       string
	paragraphs []string
	pos        int
}

// pageSize shrinks pages as the font or line height grows.
func pageSize(fontSize, lineHeight float64) int {
	if fontSize <= 0 || lineHeight <= 0 {
		return basePageParagraphs
	}
	scale := (models.DefaultFontSize / fontSize) * (models.DefaultLineHeight / lineHeight)
	n := int(math.Round(basePageParagraphs * scale))
	if n < 1 {
		return 1
	}
	return n
}

// Read opens downloaded book n at its saved position and prints a page.
func (a *App) Read(ctx context.Context, n int) error {
	b, err := a.bookAt(n)
	if err != nil {
		return err
	}
	if !b.IsDownloaded {
		fmt.Fprintf(a.out, "Download %q first: get %d\n", b.Title, n)
		return nil
	}

	a.reader.Open(ctx, b.LocalPath)
	a.reader.Wait()

	s := a.reader.State()
	if s.Status != viewmodels.ReaderReady {
		a.reading = nil
		fmt.Fprintln(a.out, s.Error)
		return nil
	}

	pos := s.InitialIndex
	if pos < 0 || pos >= len(s.Paragraphs) {
		pos = 0
	}
	a.reading = &readingSession{title: b.Title, path: b.LocalPath, paragraphs: s.Paragraphs, pos: pos}

	header := fmt.Sprintf("%s by %s, %d paragraphs", b.Title, b.Author, len(s.Paragraphs))
	if s.PageCount > 0 {
		header += fmt.Sprintf(", %d PDF pages", s.PageCount)
	}
	fmt.Fprintln(a.out, header)
	return a.showPage(ctx)
}

// More advances the open book by one page.
func (a *App) More(ctx context.Context) error {
	r := a.reading
	if r == nil {
		return errNothingOpen
	}
	s := a.reader.State()
	next := r.pos + pageSize(s.FontSize, s.LineHeight)
	if next >= len(r.paragraphs) {
		fmt.Fprintln(a.out, "End of book.")
		return nil
	}
	r.pos = next
	return a.showPage(ctx)
}

// SetFontSize stores the font size. The open page is reprinted.
func (a *App) SetFontSize(ctx context.Context, v float64) error {
	if err := a.reader.OnFontSizeChanged(ctx, v); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Font size set to %g\n", v)
	return a.redraw(ctx)
}

// SetLineHeight stores the line height. The open page is reprinted.
func (a *App) SetLineHeight(ctx context.Context, v float64) error {
	if err := a.reader.OnLineHeightChanged(ctx, v); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Line height set to %g\n", v)
	return a.redraw(ctx)
}

func (a *App) redraw(ctx context.Context) error {
	if a.reading == nil {
		return nil
	}
	return a.showPage(ctx)
}

// showPage prints the page at r.pos and saves it as the reading position.
func (a *App) showPage(ctx context.Context) error {
	r := a.reading
	s := a.reader.State()
	size := pageSize(s.FontSize, s.LineHeight)
	end := min(r.pos+size, len(r.paragraphs))

	for _, p := range r.paragraphs[r.pos:end] {
		fmt.Fprintln(a.out, p)
		if s.LineHeight > models.DefaultLineHeight {
			fmt.Fprintln(a.out)
		}
	}
	fmt.Fprintf(a.out, "-- %d/%d (type 'more') --\n", end, len(r.paragraphs))

	if err := a.reader.OnScrollChanged(ctx, r.pos, 0); err != nil {
		a.log.Warn(ctx, "reading position not saved", "path", r.path, "error", err)
	}
	return nil
}
