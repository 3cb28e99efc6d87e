package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

// DocumentSink persists a transformed document.
type DocumentSink interface {
	Write(ctx context.Context, target m.Target, data []byte) error
}

// LocalDocumentSink writes documents to disk, or to a writer for stdout targets.
type LocalDocumentSink struct {
	mu     sync.Mutex
	stdout io.Writer
}

// NewLocalDocumentSink constructs a LocalDocumentSink. A nil stdout defaults
// to os.Stdout.
func NewLocalDocumentSink(stdout io.Writer) *LocalDocumentSink {
	if stdout == nil {
		stdout = os.Stdout
	}

	return &LocalDocumentSink{stdout: stdout}
}

// Write stores data at target, creating missing parent directories.
func (s *LocalDocumentSink) Write(ctx context.Context, target m.Target, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if target.IsStdout() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, err := s.stdout.Write(data); err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}

		return nil
	}

	path := string(target)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	// #nosec G306 - transformed documents are meant to be shared
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
