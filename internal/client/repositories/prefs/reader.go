package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/dbx"
)

// Preference keys.
const (
	KeyFontSize   = "fontSizeSp"
	KeyLineHeight = "lineHeight"
)

// IndexKey is the key of the first-visible-paragraph index for path.
func IndexKey(path string) string { return "progress_" + path + "_i" }

// OffsetKey is the key of the in-paragraph scroll offset for path.
func OffsetKey(path string) string { return "progress_" + path + "_o" }

// ReaderSettingsRepository persists reader typography and positions.
type ReaderSettingsRepository interface {
	Settings(ctx context.Context) (models.ReaderSettings, error)
	SaveFontSize(ctx context.Context, size float64) error
	SaveLineHeight(ctx context.Context, height float64) error
	Position(ctx context.Context, path string) (models.ReadingPosition, error)
	SavePosition(ctx context.Context, path string, pos models.ReadingPosition) error
}

type readerSettings struct {
	db *sql.DB
}

func NewReaderSettingsRepository(db *sql.DB) ReaderSettingsRepository {
	return &readerSettings{db: db}
}

func (r *readerSettings) Settings(ctx context.Context) (models.ReaderSettings, error) {
	repo := NewSQLiteRepository(r.db)
	s := models.DefaultReaderSettings()

	var err error
	if s.FontSize, err = GetFloat(ctx, repo, KeyFontSize, s.FontSize); err != nil {
		return models.ReaderSettings{}, err
	}
	if s.LineHeight, err = GetFloat(ctx, repo, KeyLineHeight, s.LineHeight); err != nil {
		return models.ReaderSettings{}, err
	}
	return s, nil
}

func (r *readerSettings) SaveFontSize(ctx context.Context, size float64) error {
	return SetFloat(ctx, NewSQLiteRepository(r.db), KeyFontSize, size)
}

func (r *readerSettings) SaveLineHeight(ctx context.Context, height float64) error {
	return SetFloat(ctx, NewSQLiteRepository(r.db), KeyLineHeight, height)
}

func (r *readerSettings) Position(ctx context.Context, path string) (models.ReadingPosition, error) {
	repo := NewSQLiteRepository(r.db)

	idx, err := GetInt(ctx, repo, IndexKey(path), 0)
	if err != nil {
		return models.ReadingPosition{}, err
	}
	off, err := GetInt(ctx, repo, OffsetKey(path), 0)
	if err != nil {
		return models.ReadingPosition{}, err
	}
	return models.ReadingPosition{Index: idx, Offset: off}, nil
}

// SavePosition writes index and offset in one transaction.
func (r *readerSettings) SavePosition(ctx context.Context, path string, pos models.ReadingPosition) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := SetInt(ctx, repo, IndexKey(path), pos.Index); err != nil {
			return err
		}
		return SetInt(ctx, repo, OffsetKey(path), pos.Offset)
	})
}

// GetFloat reads key as a float, returning def when the key is absent.
func GetFloat(ctx context.Context, r Repository, key string, def float64) (float64, error) {
	v, err := r.Get(ctx, key)
	if err != nil || v == nil {
		return def, err
	}
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return def, fmt.Errorf("pref[%s] is not a number: %w", key, err)
	}
	return f, nil
}

func SetFloat(ctx context.Context, r Repository, key string, v float64) error {
	return r.Set(ctx, key, []byte(strconv.FormatFloat(v, 'f', -1, 64)))
}

// GetInt reads key as an int, returning def when the key is absent.
func GetInt(ctx context.Context, r Repository, key string, def int) (int, error) {
	v, err := r.Get(ctx, key)
	if err != nil || v == nil {
		return def, err
	}
	i, err := strconv.Atoi(string(v))
	if err != nil {
		return def, fmt.Errorf("pref[%s] is not an integer: %w", key, err)
	}
	return i, nil
}

func SetInt(ctx context.Context, r Repository, key string, v int) error {
	return r.Set(ctx, key, []byte(strconv.Itoa(v)))
}
