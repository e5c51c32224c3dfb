// Package yamlfile loads a scene graph from a single YAML document.
package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a scene graph file.
type Loader struct {
	Path string
}

// New creates a loader for the file at path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and decodes the file.
func (l *Loader) Load(ctx context.Context) (*domain.SceneGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read scene graph: %w", err)
	}
	g, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return g, nil
}

// Decode parses a YAML scene graph. Scene ids default to their map key.
// Unknown fields are rejected so typos surface instead of being ignored.
func Decode(data []byte) (*domain.SceneGraph, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var g domain.SceneGraph
	if err := dec.Decode(&g); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if g.Scenes == nil {
		g.Scenes = make(map[string]*domain.Scene)
	}
	for id, s := range g.Scenes {
		if s == nil {
			return nil, fmt.Errorf("scene %s: empty definition", id)
		}
		if s.ID == "" {
			s.ID = id
		}
		if s.ID != id {
			return nil, fmt.Errorf("scene keyed %s declares id %s", id, s.ID)
		}
	}
	return &g, nil
}

// Watch implements ports.Watchable. It watches the file's directory so
// editors that save by renaming are still noticed.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	abs, err := filepath.Abs(l.Path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs || !evt.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				select {
				case ch <- l.Path:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return ch, nil
}
