package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all writers. A failing writer does
// not stop the others; its error is combined into the result.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

func (cw CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Combine(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
