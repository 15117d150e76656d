package io

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/model"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/internal/tileset"
	"github.com/ecopia-map/osgb_tiler/tools"
)

type StandardConsumer struct {
	assembler  *model.Assembler
	policy     geometry.GeometricErrorPolicy
	refineMode tiler.RefineMode
	producer   Producer
	join       *Join
}

func NewStandardConsumer(assembler *model.Assembler, policy geometry.GeometricErrorPolicy, refineMode tiler.RefineMode, producer Producer, join *Join) *StandardConsumer {
	return &StandardConsumer{
		assembler:  assembler,
		policy:     policy,
		refineMode: refineMode,
		producer:   producer,
		join:       join,
	}
}

// Continually consumes WorkUnits submitted to a work channel producing the corresponding .b3dm files.
// Submits a parent as soon as its last child is published and closes the channel once the root is built.
// Returns on the first unrecoverable error, or when the context is cancelled.
func (c *StandardConsumer) Consume(ctx context.Context, work chan *WorkUnit) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case workUnit, ok := <-work:
			if !ok {
				// channel was closed after the root, quit infinite loop
				return nil
			}
			if err := c.doWork(work, workUnit); err != nil {
				return err
			}
		}
	}
}

func (c *StandardConsumer) doWork(work chan *WorkUnit, workUnit *WorkUnit) error {
	result, err := c.buildTile(workUnit)
	if err != nil {
		if !tiler.IsRecoverable(err) {
			glog.Errorf("tile %s: %v", workUnit.Node.SourcePath, err)
			return err
		}
		if c.isRoot(workUnit) {
			glog.Errorf("root tile %s: %v", workUnit.Node.SourcePath, err)
			return fmt.Errorf("%w: %w", tiler.ErrRootTileFailed, err)
		}
		glog.Warningf("dropping tile %s and its subtree: %v", workUnit.Node.SourcePath, err)
	}

	parent, ready := c.join.Publish(workUnit.Index, result)
	if parent < 0 {
		close(work)
		return nil
	}
	if ready {
		c.producer.Submit(work, parent)
	}
	return nil
}

func (c *StandardConsumer) isRoot(workUnit *WorkUnit) bool {
	return c.join.parents[workUnit.Index] < 0
}

// Assembles the tile, writes its container and folds it with the published children
func (c *StandardConsumer) buildTile(workUnit *WorkUnit) (*tileset.TilesetNode, error) {
	m, volume, err := c.assembler.Assemble(workUnit.Node.SourcePath)
	if err != nil {
		return nil, err
	}

	data, err := m.MarshalB3dm()
	if err != nil {
		return nil, &tiler.WriteError{Path: workUnit.OutputPath, Err: err}
	}
	if err := tools.WriteFileAtomic(workUnit.OutputPath, data, 0666); err != nil {
		return nil, &tiler.WriteError{Path: workUnit.OutputPath, Err: err}
	}
	glog.V(1).Infof("wrote %s", workUnit.OutputPath)

	children := c.join.ChildResults(workUnit.Index)
	return tileset.ComposeNode(workUnit.ContentURI, volume, children, c.refineMode, c.policy), nil
}
