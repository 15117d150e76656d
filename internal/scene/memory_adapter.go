package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// In-memory tile, the children list follows the same convention as file based scenes
type MemoryScene struct {
	GeometryList []*Geometry
	Children     []string
}

func (s *MemoryScene) Geometries() []*Geometry {
	return s.GeometryList
}

func (s *MemoryScene) ChildTileReferences() []string {
	return s.Children
}

// Serves scenes registered by path. Safe for concurrent use.
type MemoryAdapter struct {
	extension string
	scenes    map[string]*MemoryScene
	sync.RWMutex
}

func NewMemoryAdapter(extension string) *MemoryAdapter {
	return &MemoryAdapter{
		extension: extension,
		scenes:    make(map[string]*MemoryScene),
	}
}

func (a *MemoryAdapter) Add(path string, s *MemoryScene) {
	a.Lock()
	defer a.Unlock()
	a.scenes[filepath.Clean(path)] = s
}

func (a *MemoryAdapter) Open(path string) (Scene, error) {
	a.RLock()
	defer a.RUnlock()
	s, ok := a.scenes[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return s, nil
}

func (a *MemoryAdapter) Extension() string {
	return a.extension
}
