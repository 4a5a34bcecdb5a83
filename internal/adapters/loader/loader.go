// Package loader provides query file loading adapters.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxQuerySize bounds how much of a query file is read.
const MaxQuerySize = 1 << 20

// TextLoader loads plain query files (.txt, .query): the whole file is the query.
type TextLoader struct{}

// NewTextLoader creates a new text query loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads a query from the given path.
func (l *TextLoader) Load(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return ReadQuery(file)
}

// SupportedExtensions returns file extensions this loader handles.
func (l *TextLoader) SupportedExtensions() []string {
	return []string{".txt", ".query"}
}

// MarkdownLoader loads queries kept in notes. When the file has fenced code
// blocks only their contents form the query; otherwise the whole file does.
type MarkdownLoader struct{}

// NewMarkdownLoader creates a new markdown query loader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{}
}

// Load reads the query embedded in a markdown file.
func (l *MarkdownLoader) Load(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := ReadQuery(file)
	if err != nil {
		return "", err
	}
	if blocks, ok := fencedBlocks(content); ok {
		return blocks, nil
	}
	return content, nil
}

// SupportedExtensions returns file extensions.
func (l *MarkdownLoader) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

type queryLoader interface {
	Load(context.Context, string) (string, error)
}

// MultiLoader combines multiple loaders.
type MultiLoader struct {
	loaders map[string]queryLoader
}

// NewMultiLoader creates a loader that handles multiple file types.
func NewMultiLoader() *MultiLoader {
	m := &MultiLoader{loaders: make(map[string]queryLoader)}
	text, md := NewTextLoader(), NewMarkdownLoader()
	for _, ext := range text.SupportedExtensions() {
		m.loaders[ext] = text
	}
	for _, ext := range md.SupportedExtensions() {
		m.loaders[ext] = md
	}
	return m
}

// Load dispatches to the appropriate loader based on extension.
func (m *MultiLoader) Load(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := m.loaders[ext]
	if !ok {
		// Default to text loader
		loader = NewTextLoader()
	}
	query, err := loader.Load(ctx, path)
	if err != nil {
		return "", fmt.Errorf("loading query %s: %w", path, err)
	}
	return query, nil
}

// SupportedExtensions returns all supported extensions.
func (m *MultiLoader) SupportedExtensions() []string {
	exts := make([]string, 0, len(m.loaders))
	for ext := range m.loaders {
		exts = append(exts, ext)
	}
	return exts
}

// ReadQuery reads at most MaxQuerySize bytes from r.
func ReadQuery(r io.Reader) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxQuerySize+1))
	if err != nil {
		return "", err
	}
	if len(content) > MaxQuerySize {
		return "", fmt.Errorf("query larger than %d bytes", MaxQuerySize)
	}
	return string(content), nil
}

// fencedBlocks joins the lines inside ``` fences.
func fencedBlocks(content string) (string, bool) {
	var out strings.Builder
	found, inside := false, false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inside = !inside
			found = true
			continue
		}
		if inside {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.String(), found
}
