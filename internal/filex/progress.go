package filex

import (
	"errors"
	"io"
	"sync"
)

// ProgressReader reports the fraction of Total bytes read so far.
// Seeking back to the start resets the counter, so transports that read
// the body twice (checksum pass then send) still end at 1.
type ProgressReader struct {
	R          io.Reader
	Total      int64
	OnProgress func(fraction float64)

	mu   sync.Mutex
	read int64
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.R.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.read += int64(n)
		read := p.read
		p.mu.Unlock()
		p.report(read)
	}
	return n, err
}

// Seek implements io.Seeker when the underlying reader supports it.
func (p *ProgressReader) Seek(offset int64, whence int) (int64, error) {
	s, ok := p.R.(io.Seeker)
	if !ok {
		return 0, errors.New("progress reader: underlying reader is not seekable")
	}
	pos, err := s.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	p.mu.Lock()
	p.read = pos
	p.mu.Unlock()
	return pos, nil
}

func (p *ProgressReader) report(read int64) {
	if p.OnProgress == nil || p.Total <= 0 {
		return
	}
	f := float64(read) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	p.OnProgress(f)
}
