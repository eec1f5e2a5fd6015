package viewmodels

import (
	"context"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/reader"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/gophshelf/internal/client/state"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
)

type ReaderStatus int

const (
	ReaderLoading ReaderStatus = iota
	ReaderReady
	ReaderError
)

type ReaderState struct {
	Status     ReaderStatus
	Paragraphs []string
	// PageCount is known for PDF books only.
	PageCount  int
	FontSize   float64
	LineHeight float64
	// Initial* is the saved position the viewer should scroll to.
	InitialIndex  int
	InitialOffset int
	Error         string
}

type ReaderViewModel struct {
	prefs prefs.ReaderSettingsRepository
	log   logging.Logger
	state *state.Store[ReaderState]
	job   job
	path  string
}

func NewReaderViewModel(p prefs.ReaderSettingsRepository, log logging.Logger) *ReaderViewModel {
	d := models.DefaultReaderSettings()
	return &ReaderViewModel{
		prefs: p,
		log:   log,
		state: state.NewStore(ReaderState{Status: ReaderLoading, FontSize: d.FontSize, LineHeight: d.LineHeight}),
	}
}

func (vm *ReaderViewModel) State() ReaderState { return vm.state.Get() }

func (vm *ReaderViewModel) Subscribe(ctx context.Context) <-chan ReaderState {
	return vm.state.Subscribe(ctx)
}

// Open restores typography and the saved position for path, then extracts
// the book text. Preference read failures fall back to defaults.
func (vm *ReaderViewModel) Open(ctx context.Context, path string) {
	vm.path = path

	settings, err := vm.prefs.Settings(ctx)
	if err != nil {
		vm.log.Warn(ctx, "reader settings unavailable", "error", err)
		settings = models.DefaultReaderSettings()
	}
	pos, err := vm.prefs.Position(ctx, path)
	if err != nil {
		vm.log.Warn(ctx, "reading position unavailable", "path", path, "error", err)
		pos = models.ReadingPosition{}
	}

	vm.state.Set(ReaderState{
		Status:        ReaderLoading,
		FontSize:      settings.FontSize,
		LineHeight:    settings.LineHeight,
		InitialIndex:  pos.Index,
		InitialOffset: pos.Offset,
	})

	vm.job.launch(ctx, func(ctx context.Context) func() {
		doc, err := reader.Open(ctx, path)
		return func() {
			vm.state.Update(func(s ReaderState) ReaderState {
				if err != nil {
					s.Status, s.Error = ReaderError, ErrorMessage(err)
					return s
				}
				s.Status, s.Error = ReaderReady, ""
				s.Paragraphs, s.PageCount = doc.Paragraphs, doc.PageCount
				return s
			})
		}
	})
}

// OnScrollChanged persists the position immediately.
func (vm *ReaderViewModel) OnScrollChanged(ctx context.Context, index, offset int) error {
	return vm.prefs.SavePosition(ctx, vm.path, models.ReadingPosition{Index: index, Offset: offset})
}

func (vm *ReaderViewModel) OnFontSizeChanged(ctx context.Context, v float64) error {
	if err := vm.prefs.SaveFontSize(ctx, v); err != nil {
		return err
	}
	vm.state.Update(func(s ReaderState) ReaderState { s.FontSize = v; return s })
	return nil
}

func (vm *ReaderViewModel) OnLineHeightChanged(ctx context.Context, v float64) error {
	if err := vm.prefs.SaveLineHeight(ctx, v); err != nil {
		return err
	}
	vm.state.Update(func(s ReaderState) ReaderState { s.LineHeight = v; return s })
	return nil
}

func (vm *ReaderViewModel) Wait() { vm.job.wait() }
