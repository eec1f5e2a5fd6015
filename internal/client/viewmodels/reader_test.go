package viewmodels

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_OpenReady(t *testing.T) {
	p := filepath.Join(t.TempDir(), "b1.txt")
	require.NoError(t, os.WriteFile(p, []byte("A\n\nB\n\n\nC"), 0o600))

	prefs := newFakeReaderPrefs()
	prefs.settings = models.ReaderSettings{FontSize: 22, LineHeight: 1.5}
	prefs.positions[p] = models.ReadingPosition{Index: 2, Offset: 40}

	vm := NewReaderViewModel(prefs, logging.Nop())
	assert.Equal(t, ReaderLoading, vm.State().Status)

	vm.Open(context.Background(), p)
	vm.Wait()

	assert.Equal(t, ReaderState{
		Status:        ReaderReady,
		Paragraphs:    []string{"A", "B", "C"},
		FontSize:      22,
		LineHeight:    1.5,
		InitialIndex:  2,
		InitialOffset: 40,
	}, vm.State())
}

func TestReader_Defaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "b1.txt")
	require.NoError(t, os.WriteFile(p, []byte("A"), 0o600))

	prefs := newFakeReaderPrefs()
	prefs.settingsErr = errors.New("locked")

	vm := NewReaderViewModel(prefs, logging.Nop())
	vm.Open(context.Background(), p)
	vm.Wait()

	s := vm.State()
	assert.Equal(t, ReaderReady, s.Status)
	assert.Equal(t, float64(models.DefaultFontSize), s.FontSize)
	assert.Equal(t, models.DefaultLineHeight, s.LineHeight)
	assert.Zero(t, s.InitialIndex)
}

func TestReader_Errors(t *testing.T) {
	dir := t.TempDir()

	vm := NewReaderViewModel(newFakeReaderPrefs(), logging.Nop())
	vm.Open(context.Background(), filepath.Join(dir, "missing.txt"))
	vm.Wait()
	assert.Equal(t, ReaderError, vm.State().Status)
	assert.Equal(t, "File not found.", vm.State().Error)

	p := filepath.Join(dir, "b.djvu")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	vm.Open(context.Background(), p)
	vm.Wait()
	assert.Equal(t, ReaderError, vm.State().Status)
	assert.Contains(t, vm.State().Error, ".djvu")
}

func TestReader_WriteThrough(t *testing.T) {
	p := filepath.Join(t.TempDir(), "b1.txt")
	require.NoError(t, os.WriteFile(p, []byte("A"), 0o600))

	prefs := newFakeReaderPrefs()
	vm := NewReaderViewModel(prefs, logging.Nop())
	vm.Open(context.Background(), p)
	vm.Wait()

	require.NoError(t, vm.OnScrollChanged(context.Background(), 7, 12))
	assert.Equal(t, models.ReadingPosition{Index: 7, Offset: 12}, prefs.positions[p])

	require.NoError(t, vm.OnFontSizeChanged(context.Background(), 24))
	require.NoError(t, vm.OnLineHeightChanged(context.Background(), 1.6))
	assert.Equal(t, models.ReaderSettings{FontSize: 24, LineHeight: 1.6}, prefs.settings)
	assert.Equal(t, 24.0, vm.State().FontSize)
	assert.Equal(t, 1.6, vm.State().LineHeight)

	prefs.saveErr = errors.New("disk full")
	assert.Error(t, vm.OnFontSizeChanged(context.Background(), 30))
	assert.Equal(t, 24.0, vm.State().FontSize)
}
