package server

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/observability"
)

// CatalogSource holds the catalog served to requests. It can be swapped while
// requests are in flight; each request works on the catalog it read.
type CatalogSource struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	path    string
	version atomic.Uint64
}

// NewCatalogSource serves a fixed catalog.
func NewCatalogSource(c *catalog.Catalog) *CatalogSource {
	return &CatalogSource{catalog: c}
}

// LoadCatalogSource loads the catalog at path. The source can later be
// reloaded or watched.
func LoadCatalogSource(path string) (*CatalogSource, error) {
	c, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return &CatalogSource{catalog: c, path: path}, nil
}

// Get returns the current catalog. Callers must not modify it.
func (s *CatalogSource) Get() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Path returns the backing file, or "" for a fixed catalog.
func (s *CatalogSource) Path() string { return s.path }

// Version counts successful reloads.
func (s *CatalogSource) Version() uint64 { return s.version.Load() }

// Reload re-reads the backing file. On error the current catalog stays.
func (s *CatalogSource) Reload(ctx context.Context) error {
	if s.path == "" {
		return errors.New(errors.ErrCodeUnsupported, "catalog has no backing file")
	}
	c, err := catalog.Load(s.path)
	images := 0
	if err == nil {
		images = len(c.Images)
		s.mu.Lock()
		s.catalog = c
		s.mu.Unlock()
		s.version.Add(1)
	}
	observability.Catalog().OnCatalogReload(ctx, s.path, images, err)
	return err
}

// Watch reloads the catalog whenever its file is written or replaced, until
// ctx is done. It watches the file's directory, so saves that replace the
// file are seen too.
func (s *CatalogSource) Watch(ctx context.Context, logger *log.Logger) error {
	if s.path == "" {
		return errors.New(errors.ErrCodeUnsupported, "catalog has no backing file")
	}
	if logger == nil {
		logger = log.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", s.path)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(target))
	}
	logger.Info("watching catalog", "path", s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(ev.Name)
			if name != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.Reload(ctx); err != nil {
				logger.Warn("catalog reload failed, keeping previous", "path", s.path, "error", err)
				continue
			}
			logger.Info("catalog reloaded", "path", s.path, "images", len(s.Get().Images))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", "error", err)
		}
	}
}
