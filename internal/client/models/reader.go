package models

// Reader defaults applied when no preference has been stored.
const (
	DefaultFontSize   = 18
	DefaultLineHeight = 1.2
)

// ReaderSettings are the global typography preferences.
type ReaderSettings struct {
	FontSize   float64
	LineHeight float64
}

// DefaultReaderSettings returns the settings used on first launch.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{FontSize: DefaultFontSize, LineHeight: DefaultLineHeight}
}

// ReadingPosition is the saved scroll position for one local file:
// the first visible paragraph and the offset inside it.
type ReadingPosition struct {
	Index  int
	Offset int
}
