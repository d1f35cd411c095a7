package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ArtifactSink persists one generated artifact, replacing whatever was
// stored at path before.
type ArtifactSink interface {
	Write(path string, content []byte) error
}

type fileSink struct{}

// NewFileSink writes artifacts to the local filesystem, creating parent
// directories as needed.
func NewFileSink() ArtifactSink {
	return fileSink{}
}

func (fileSink) Write(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MemorySink keeps the latest content written to each path.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (m *MemorySink) Write(path string, content []byte) error {
	data := make([]byte, len(content))
	copy(data, content)

	m.mu.Lock()
	m.files[path] = data
	m.mu.Unlock()
	return nil
}

func (m *MemorySink) Read(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

// Paths returns every stored path in lexical order.
func (m *MemorySink) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
