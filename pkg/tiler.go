package pkg

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"github.com/golang/glog"

	"github.com/ecopia-map/osgb_tiler/internal/io"
	"github.com/ecopia-map/osgb_tiler/internal/model"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/internal/tileset"
	"github.com/ecopia-map/osgb_tiler/pkg/algorithm_manager"
	"github.com/ecopia-map/osgb_tiler/tools"
)

type Tiler struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewTiler(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) tiler.ITiler {
	return &Tiler{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Starts the tiling process
func (t *Tiler) RunTiler(opts *tiler.TilerOptions) error {
	return t.RunTilerContext(context.Background(), opts)
}

// Converts every root tile found from the options. A root tile that cannot be converted is logged and
// skipped; the last such error is returned once all roots were processed.
func (t *Tiler) RunTilerContext(ctx context.Context, opts *tiler.TilerOptions) error {
	glog.Infoln("Preparing list of files to process...")

	adapter := t.algorithmManager.GetSceneAdapter()
	tileFiles := t.fileFinder.GetTileFilesToProcess(opts, adapter.Extension())
	if len(tileFiles) == 0 {
		return fmt.Errorf("no root tile found in %s", opts.Input)
	}

	var lastErr error
	for i, filePath := range tileFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(tileFiles)))
		if err := t.processRootTile(ctx, filePath, opts); err != nil {
			glog.Errorf("root tile %s: %v", filePath, err)
			lastErr = err
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
	return lastErr
}

func (t *Tiler) processRootTile(ctx context.Context, filePath string, opts *tiler.TilerOptions) error {
	tools.LogOutput("> discovering levels...", path.Base(filePath))
	tree, ok := tileset.Discover(t.algorithmManager.GetSceneAdapter(), filePath, opts.MaxLevel)
	if !ok {
		return fmt.Errorf("%w: %s cannot be read or is beyond max level %d", tiler.ErrRootTileFailed, filePath, opts.MaxLevel)
	}
	glog.Infof("discovered %d tiles from %s", len(tree.Nodes), filePath)

	if err := t.prepareOutputFolders(tree, opts.Output); err != nil {
		return err
	}

	tools.LogOutput("> exporting tiles...")
	root, err := t.exportTree(ctx, tree, opts)
	if err != nil {
		return err
	}

	rootFolder := path.Join(opts.Output, tree.RootNode().TileBaseName)
	if err := tileset.WriteTilesetJson(rootFolder, tileset.NewTileset(root)); err != nil {
		return err
	}

	tools.LogOutput("> done processing", path.Base(filePath))
	return nil
}

// Creates one output folder per tile base name
func (t *Tiler) prepareOutputFolders(tree *tileset.LevelTree, output string) error {
	for _, baseName := range tree.TileBaseNames() {
		folder := path.Join(output, baseName)
		if err := tools.CreateDirectoryIfDoesNotExist(folder); err != nil {
			return &tiler.DirectoryError{Path: folder, Err: err}
		}
	}
	return nil
}

func (t *Tiler) exportTree(ctx context.Context, tree *tileset.LevelTree, opts *tiler.TilerOptions) (*tileset.TilesetNode, error) {
	refineMode := opts.RefineMode
	if refineMode == "" {
		refineMode = tiler.RefineModeReplace
	}

	assembler := model.NewAssembler(t.algorithmManager.GetSceneAdapter(), opts.JPEGQuality)
	builder := io.NewBuilder(assembler, t.algorithmManager.GetGeometricErrorPolicy(), refineMode, opts.NumWorkers())
	return builder.Build(ctx, tree, opts.Output)
}
