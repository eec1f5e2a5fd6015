package prefs

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSettings_Defaults(t *testing.T) {
	r := NewReaderSettingsRepository(setupDB(t))
	ctx := context.Background()

	s, err := r.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultReaderSettings(), s)

	pos, err := r.Position(ctx, "/cache/b1.txt")
	require.NoError(t, err)
	assert.Equal(t, models.ReadingPosition{}, pos)
}

func TestReaderSettings_RoundTrip(t *testing.T) {
	r := NewReaderSettingsRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SaveFontSize(ctx, 22))
	require.NoError(t, r.SaveLineHeight(ctx, 1.6))
	require.NoError(t, r.SavePosition(ctx, "/cache/b1.txt", models.ReadingPosition{Index: 42, Offset: 130}))

	s, err := r.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReaderSettings{FontSize: 22, LineHeight: 1.6}, s)

	pos, err := r.Position(ctx, "/cache/b1.txt")
	require.NoError(t, err)
	assert.Equal(t, models.ReadingPosition{Index: 42, Offset: 130}, pos)

	other, err := r.Position(ctx, "/cache/b2.txt")
	require.NoError(t, err)
	assert.Equal(t, models.ReadingPosition{}, other)
}

func TestReaderSettings_KeysStoredAsText(t *testing.T) {
	db := setupDB(t)
	r := NewReaderSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, r.SavePosition(ctx, "/p.epub", models.ReadingPosition{Index: 3, Offset: 7}))

	kv := NewSQLiteRepository(db)
	v, err := kv.Get(ctx, "progress_/p.epub_i")
	require.NoError(t, err)
	assert.Equal(t, "3", string(v))
	v, err = kv.Get(ctx, "progress_/p.epub_o")
	require.NoError(t, err)
	assert.Equal(t, "7", string(v))
}

func TestGetFloat_Malformed(t *testing.T) {
	kv := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyFontSize, []byte("big")))

	f, err := GetFloat(ctx, kv, KeyFontSize, 18)
	require.Error(t, err)
	assert.Equal(t, 18.0, f)
}

func TestSessionStore(t *testing.T) {
	s := NewSessionStore(NewSQLiteRepository(setupDB(t)))
	ctx := context.Background()

	tok, err := s.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SaveToken(ctx, "jwt"))
	tok, err = s.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)

	require.NoError(t, s.ClearToken(ctx))
	tok, err = s.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
