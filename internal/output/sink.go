package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Document is a fully rendered report.
type Document struct {
	// Name is the preferred file path for the document, if the format has one.
	Name   string
	Format string
	Body   []byte
}

// Sink is a destination for rendered documents.
type Sink interface {
	WriteDocument(doc Document) error
}

// StreamSink writes document bodies to a shared stream.
type StreamSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewStreamSink(w io.Writer) *StreamSink {
	if w == nil {
		w = os.Stdout
	}
	return &StreamSink{w: w}
}

func (s *StreamSink) WriteDocument(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(doc.Body); err != nil {
		return err
	}
	return flushIfPossible(s.w)
}

// FileSink writes each document to a file, replacing any previous content.
// With no path set the document name is used.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) WriteDocument(doc Document) error {
	path := s.path
	if path == "" {
		path = doc.Name
	}
	if path == "" {
		return fmt.Errorf("output path required for %s document", doc.Format)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, doc.Body, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// MemorySink keeps documents in memory.
type MemorySink struct {
	mu   sync.Mutex
	docs []Document
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) WriteDocument(doc Document) error {
	body := make([]byte, len(doc.Body))
	copy(body, doc.Body)
	doc.Body = body

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return nil
}

func (s *MemorySink) Documents() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Last returns the most recent document.
func (s *MemorySink) Last() (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.docs) == 0 {
		return Document{}, false
	}
	return s.docs[len(s.docs)-1], true
}

func (s *MemorySink) String() string {
	doc, _ := s.Last()
	return string(doc.Body)
}

// MultiSink copies every document to all of its sinks.
type MultiSink []Sink

func (m MultiSink) WriteDocument(doc Document) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.WriteDocument(doc); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", s, err))
		}
	}
	return errors.Join(errs...)
}

// flushIfPossible flushes buffered streams such as *bufio.Writer.
func flushIfPossible(w io.Writer) error {
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
