package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/viewmodels"
)

var errNoSuchBook = errors.New("no such book, run 'list' first")

// List reloads the library and prints the books matching the current query.
func (a *App) List(ctx context.Context) error {
	a.books.Load(ctx)
	a.books.Wait()
	a.printBooks()
	return nil
}

// Find filters the loaded library by title or author. An empty query
// clears the filter.
func (a *App) Find(ctx context.Context, query string) error {
	if a.books.State().Status == viewmodels.BooksLoading {
		a.books.Load(ctx)
		a.books.Wait()
	}
	a.books.OnSearchQueryChanged(query)
	a.printBooks()
	return nil
}

// Download fetches book n into the cache.
func (a *App) Download(ctx context.Context, n int) error {
	b, err := a.bookAt(n)
	if err != nil {
		return err
	}
	if b.IsDownloaded {
		fmt.Fprintf(a.out, "%q is already downloaded\n", b.Title)
		return nil
	}
	a.bookAction(ctx, b)
	return nil
}

// Delete removes the cached copy of book n after confirmation.
func (a *App) Delete(ctx context.Context, n int) error {
	b, err := a.bookAt(n)
	if err != nil {
		return err
	}
	if !b.IsDownloaded {
		fmt.Fprintf(a.out, "%q is not downloaded\n", b.Title)
		return nil
	}
	ok, err := GetConfirmation(a.in, fmt.Sprintf("Delete the local copy of %q?", b.Title), a.out)
	if err != nil || !ok {
		return err
	}
	if a.reading != nil && a.reading.path == b.LocalPath {
		a.reading = nil
	}
	a.bookAction(ctx, b)
	return nil
}

// Upload prompts for a file, title and author and uploads the book,
// printing byte progress while it runs.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.in, "Enter path to the book file", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.in, "Enter title", a.out)
	if err != nil {
		return err
	}
	author, err := getSimpleText(a.in, "Enter author", a.out)
	if err != nil {
		return err
	}

	var f *os.File
	if path != "" {
		if f, err = os.Open(path); err != nil {
			return err
		}
		defer f.Close()
	}

	subCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range a.upload.Subscribe(subCtx) {
			if s.Loading {
				fmt.Fprintf(a.out, "\rUploading... %3.0f%%", s.Progress*100)
			}
		}
	}()

	if f != nil {
		a.upload.Upload(ctx, title, author, filepath.Base(path), f)
	} else {
		a.upload.Upload(ctx, title, author, "", nil)
	}
	a.upload.Wait()
	cancel()
	<-done

	s := a.upload.State()
	switch {
	case s.Error != "":
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, s.Error)
		a.upload.ClearError()
	case s.Success:
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Book uploaded")
		a.upload.ResetState()
		return a.List(ctx)
	}
	return nil
}

func (a *App) bookAction(ctx context.Context, b models.Book) {
	a.books.OnBookAction(ctx, b)
	a.books.Wait()
	a.drainEvents()
}

func (a *App) drainEvents() {
	for {
		select {
		case msg := <-a.books.Events():
			fmt.Fprintln(a.out, msg)
		default:
			return
		}
	}
}

// bookAt returns the n-th (1-based) book of the filtered list.
func (a *App) bookAt(n int) (models.Book, error) {
	list := a.books.State().Filtered
	if n < 1 || n > len(list) {
		return models.Book{}, errNoSuchBook
	}
	return list[n-1], nil
}

func (a *App) printBooks() {
	s := a.books.State()
	switch s.Status {
	case viewmodels.BooksError:
		fmt.Fprintln(a.out, s.Error)
		return
	case viewmodels.BooksEmpty:
		fmt.Fprintln(a.out, "Your library is empty. Use 'upload' to add a book.")
		return
	case viewmodels.BooksLoading:
		return
	}
	if len(s.Filtered) == 0 {
		fmt.Fprintf(a.out, "No books match %q\n", s.Query)
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tAUTHOR\tTYPE\tLOCAL")
	for i, b := range s.Filtered {
		local := ""
		if b.IsDownloaded {
			local = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, b.Title, b.Author, b.Extension, local)
	}
	tw.Flush()
}
