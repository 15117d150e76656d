package tiler

import (
	"runtime"
)

// Refine mode written in the tileset. Paged LOD children always replace their parent.
type RefineMode string

const (
	RefineModeReplace RefineMode = "REPLACE"
)

func (e RefineMode) String() string {
	return string(e)
}

type SceneFormat string

const (
	SceneFormatJSON SceneFormat = "osgjson" // JSON export of paged LOD tiles
)

const (
	DefaultMaxLevel = 100
)

// Contains the options needed for the tiling algorithm
type TilerOptions struct {
	Input                string      // Input root tile file, or dataset folder when FolderProcessing is set
	Output               string      // Output folder, one subfolder per tile base name is created in it
	FolderProcessing     bool        // Enables the processing of all root tiles found in the input folder
	MaxLevel             int         // Tiles with a level number >= MaxLevel are skipped together with their subtree
	Workers              int         // Number of tiles converted concurrently
	JPEGQuality          int         // Quality of the JPEG textures embedded in the tiles
	GeometricErrorPolicy string      // Name of the policy deriving a tile's geometric error from its children
	SceneFormat          SceneFormat // Format of the input tile files
	RefineMode           RefineMode  // Refine mode written in the tileset, always REPLACE for LOD hierarchies

	Command string
}

func (opt *TilerOptions) NumWorkers() int {
	if opt.Workers <= 0 {
		return runtime.NumCPU()
	}
	return opt.Workers
}

type ITiler interface {
	RunTiler(opts *TilerOptions) error
}
