// Package store holds the sinks converted trees are written to.
//
// Sinks receive records in input order from a single goroutine and are not
// safe for concurrent use.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Record is one converted tree. Output is the rendered text written by text
// sinks; Err is set for a tree that failed to convert.
type Record struct {
	Source   string
	Index    int
	TreeID   string
	Sentence string
	Output   string
	Err      error
}

// Sink consumes records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}

// TextSink writes the output of successful records to a writer.
type TextSink struct {
	w      io.Writer
	closer io.Closer
}

// NewTextSink returns a sink writing to w. When w is an io.Closer other than
// the process's standard streams, pass closeOnDone to close it with the sink.
func NewTextSink(w io.Writer, closeOnDone bool) *TextSink {
	sink := &TextSink{w: w}

	if c, ok := w.(io.Closer); ok && closeOnDone {
		sink.closer = c
	}

	return sink
}

// Write writes rec.Output unless the record failed.
func (s *TextSink) Write(_ context.Context, rec Record) error {
	if rec.Err != nil || rec.Output == "" {
		return nil
	}

	if _, err := io.WriteString(s.w, rec.Output); err != nil {
		return fmt.Errorf("failed to write %s: %w", rec.TreeID, err)
	}

	return nil
}

// Close closes the underlying writer when the sink owns it.
func (s *TextSink) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

type tee []Sink

// Tee returns a sink that writes every record to all sinks in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Write(ctx context.Context, rec Record) error {
	for _, sink := range t {
		if err := sink.Write(ctx, rec); err != nil {
			return err
		}
	}

	return nil
}

func (t tee) Close() error {
	var errs []error

	for _, sink := range t {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
