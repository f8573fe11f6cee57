package backend

import (
	"io"

	"github.com/pkg/errors"
)

// WriterModelSink copies the discovered model to a writer.
type WriterModelSink struct {
	w io.Writer
}

// NewWriterModelSink creates a sink writing to w.
func NewWriterModelSink(w io.Writer) *WriterModelSink {
	return &WriterModelSink{w: w}
}

// SetModelFiles writes content.
func (s *WriterModelSink) SetModelFiles(content string) error {
	_, err := io.WriteString(s.w, content)

	return errors.Wrap(err, "unable to write model")
}
