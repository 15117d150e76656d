package tools

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/golang/glog"

	"github.com/ecopia-map/osgb_tiler/internal/tiler"
)

const dataFolder = "Data"

type FileFinder interface {
	GetTileFilesToProcess(opts *tiler.TilerOptions, extension string) []string
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetTileFilesToProcess(opts *tiler.TilerOptions, extension string) []string {
	// If folder processing is not enabled then the root tile file is given by -input flag, otherwise look for
	// <Tile>/<Tile><ext> root tiles in the Data subfolder of -input, or in -input itself
	if !opts.FolderProcessing {
		return []string{opts.Input}
	}

	dataDir := filepath.Join(opts.Input, dataFolder)
	if !IsDirectory(dataDir) {
		dataDir = opts.Input
	}
	return f.getRootTilesFromFolder(dataDir, extension)
}

func (f *StandardFileFinder) getRootTilesFromFolder(folder string, extension string) []string {
	var tileFiles = make([]string, 0)

	entries, err := os.ReadDir(folder)
	if err != nil {
		glog.Errorf("cannot list %s: %v", folder, err)
		return tileFiles
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rootTile := filepath.Join(folder, entry.Name(), entry.Name()+extension)
		if info, err := os.Stat(rootTile); err == nil && !info.IsDir() {
			tileFiles = append(tileFiles, rootTile)
		} else {
			glog.V(1).Infof("folder %s has no root tile %s", entry.Name(), filepath.Base(rootTile))
		}
	}

	sort.Strings(tileFiles)
	return tileFiles
}
