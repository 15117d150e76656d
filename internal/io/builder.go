package io

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/model"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/internal/tileset"
)

// Builds the tiles of a level tree bottom-up: a node is converted once all of its children are
type Builder struct {
	assembler  *model.Assembler
	policy     geometry.GeometricErrorPolicy
	refineMode tiler.RefineMode
	workers    int
}

func NewBuilder(assembler *model.Assembler, policy geometry.GeometricErrorPolicy, refineMode tiler.RefineMode, workers int) *Builder {
	if workers <= 0 {
		workers = 1
	}
	return &Builder{
		assembler:  assembler,
		policy:     policy,
		refineMode: refineMode,
		workers:    workers,
	}
}

// Writes the container of every surviving tile under basePath/<TileBaseName>/ and returns the built root.
// The output folders must already exist.
func (b *Builder) Build(ctx context.Context, tree *tileset.LevelTree, basePath string) (*tileset.TilesetNode, error) {
	g, ctx := errgroup.WithContext(ctx)

	// buffered to the tree size, every node is submitted exactly once so no submit can block
	workChannel := make(chan *WorkUnit, len(tree.Nodes))

	join := NewJoin(tree)
	producer := NewStandardProducer(basePath, tree)
	producer.Produce(workChannel)

	for i := 0; i < b.workers; i++ {
		consumer := NewStandardConsumer(b.assembler, b.policy, b.refineMode, producer, join)
		g.Go(func() error {
			return consumer.Consume(ctx, workChannel)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return join.Result(tree.Root), nil
}
