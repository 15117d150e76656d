package tiler

import (
	"errors"
	"fmt"
)

var ErrRootTileFailed = errors.New("root tile could not be converted")

// The scene-graph adapter could not open or parse a tile file
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read tile %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// The tile yielded no geometry with vertices
type EmptyGeometryError struct {
	Path string
}

func (e *EmptyGeometryError) Error() string {
	return fmt.Sprintf("tile %s has no usable geometry", e.Path)
}

// Container or descriptor bytes could not be persisted
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Output directory unavailable
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("create directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// True for the errors that only drop the failing tile's subtree
func IsRecoverable(err error) bool {
	var sourceErr *SourceReadError
	var emptyErr *EmptyGeometryError
	return errors.As(err, &sourceErr) || errors.As(err, &emptyErr)
}
