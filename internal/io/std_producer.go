package io

import (
	"path"

	"github.com/ecopia-map/osgb_tiler/internal/tileset"
)

type StandardProducer struct {
	basePath     string
	tree         *tileset.LevelTree
	rootBaseName string
}

// Creates a producer writing the containers of every tile base name in a subfolder of basePath
func NewStandardProducer(basePath string, tree *tileset.LevelTree) *StandardProducer {
	return &StandardProducer{
		basePath:     basePath,
		tree:         tree,
		rootBaseName: tree.RootNode().TileBaseName,
	}
}

// Submits the leaves of the tree, the only nodes with no child to wait for
func (p *StandardProducer) Produce(work chan<- *WorkUnit) {
	for _, leaf := range p.tree.Leaves() {
		p.Submit(work, leaf)
	}
}

func (p *StandardProducer) Submit(work chan<- *WorkUnit, index int) {
	node := &p.tree.Nodes[index]
	work <- &WorkUnit{
		Index:      index,
		Node:       node,
		OutputPath: path.Join(p.basePath, node.TileBaseName, tileset.OutputFileName(node.Name)),
		ContentURI: tileset.ContentURI(p.rootBaseName, node),
	}
}
