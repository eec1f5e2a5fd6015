package viewmodels

import (
	"context"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/books"
	"github.com/dmitrijs2005/gophshelf/internal/client/state"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
)

type BooksStatus int

const (
	BooksLoading BooksStatus = iota
	BooksSuccess
	BooksEmpty
	BooksError
)

// BooksState is the library screen. Filtered holds the books matching Query.
type BooksState struct {
	Status   BooksStatus
	Books    []models.Book
	Filtered []models.Book
	Query    string
	Error    string
}

// Toast messages emitted on Events.
const (
	MsgBookDownloaded = "Book downloaded"
	MsgFileDeleted    = "File deleted"
)

type MyBooksViewModel struct {
	repo   books.MetaRepository
	log    logging.Logger
	state  *state.Store[BooksState]
	events chan string
	// job loads the list and action runs downloads and deletes. Neither
	// cancels the other.
	job    job
	action job
}

func NewMyBooksViewModel(repo books.MetaRepository, log logging.Logger) *MyBooksViewModel {
	return &MyBooksViewModel{
		repo:   repo,
		log:    log,
		state:  state.NewStore(BooksState{Status: BooksLoading}),
		events: make(chan string, 16),
	}
}

func (vm *MyBooksViewModel) State() BooksState { return vm.state.Get() }

func (vm *MyBooksViewModel) Subscribe(ctx context.Context) <-chan BooksState {
	return vm.state.Subscribe(ctx)
}

// Events delivers one-shot toast messages. Messages are dropped when
// nobody drains the channel.
func (vm *MyBooksViewModel) Events() <-chan string { return vm.events }

func (vm *MyBooksViewModel) Load(ctx context.Context) {
	vm.state.Update(func(s BooksState) BooksState {
		return BooksState{Status: BooksLoading, Query: s.Query}
	})

	vm.job.launch(ctx, func(ctx context.Context) func() {
		list, err := vm.repo.ListBooks(ctx)
		return func() {
			vm.state.Update(func(s BooksState) BooksState {
				switch {
				case err != nil:
					return BooksState{Status: BooksError, Query: s.Query, Error: ErrorMessage(err)}
				case len(list) == 0:
					return BooksState{Status: BooksEmpty, Query: s.Query}
				default:
					return BooksState{Status: BooksSuccess, Query: s.Query, Books: list, Filtered: filterBooks(list, s.Query)}
				}
			})
		}
	})
}

func (vm *MyBooksViewModel) OnSearchQueryChanged(query string) {
	vm.state.Update(func(s BooksState) BooksState {
		s.Query = query
		if s.Status == BooksSuccess {
			s.Filtered = filterBooks(s.Books, query)
		}
		return s
	})
}

// OnBookAction deletes the local copy of a downloaded book and downloads
// any other book.
func (vm *MyBooksViewModel) OnBookAction(ctx context.Context, book models.Book) {
	vm.action.launch(ctx, func(ctx context.Context) func() {
		var (
			updated models.Book
			err     error
			okMsg   string
		)
		if book.IsDownloaded {
			updated, err = vm.repo.DeleteBook(ctx, book)
			okMsg = MsgFileDeleted
		} else {
			updated, err = vm.repo.DownloadBook(ctx, book)
			okMsg = MsgBookDownloaded
		}

		return func() {
			if err != nil {
				vm.log.Warn(ctx, "book action failed", "id", book.ID, "error", err)
				vm.emit("Error: " + ErrorMessage(err))
				return
			}
			vm.replaceBook(updated)
			vm.emit(okMsg)
		}
	})
}

func (vm *MyBooksViewModel) Wait() {
	vm.job.wait()
	vm.action.wait()
}

func (vm *MyBooksViewModel) replaceBook(b models.Book) {
	vm.state.Update(func(s BooksState) BooksState {
		if s.Status != BooksSuccess {
			return s
		}
		list := make([]models.Book, len(s.Books))
		for i, old := range s.Books {
			if old.ID == b.ID {
				old = b
			}
			list[i] = old
		}
		s.Books = list
		s.Filtered = filterBooks(list, s.Query)
		return s
	})
}

func (vm *MyBooksViewModel) emit(msg string) {
	select {
	case vm.events <- msg:
	default:
	}
}

func filterBooks(list []models.Book, query string) []models.Book {
	out := make([]models.Book, 0, len(list))
	for _, b := range list {
		if b.Matches(query) {
			out = append(out, b)
		}
	}
	return out
}
