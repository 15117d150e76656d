package io

import (
	"sync/atomic"

	"github.com/ecopia-map/osgb_tiler/internal/tileset"
)

// Tracks, for every node, how many children still have to publish their result.
// A node's result slot is written once, by the consumer that built it, before the
// pending counter of its parent is decremented.
type Join struct {
	tree    *tileset.LevelTree
	parents []int
	pending []int32
	results []*tileset.TilesetNode
}

func NewJoin(tree *tileset.LevelTree) *Join {
	pending := make([]int32, len(tree.Nodes))
	for i, node := range tree.Nodes {
		pending[i] = int32(len(node.Children))
	}
	return &Join{
		tree:    tree,
		parents: tree.Parents(),
		pending: pending,
		results: make([]*tileset.TilesetNode, len(tree.Nodes)),
	}
}

// Publishes the result of a node, nil when its subtree was dropped. Returns the parent index and
// whether this was the parent's last pending child. The root has parent -1.
func (j *Join) Publish(index int, result *tileset.TilesetNode) (int, bool) {
	j.results[index] = result
	parent := j.parents[index]
	if parent < 0 {
		return parent, false
	}
	return parent, atomic.AddInt32(&j.pending[parent], -1) == 0
}

// Results of the surviving children of a ready node, in child order
func (j *Join) ChildResults(index int) []*tileset.TilesetNode {
	children := make([]*tileset.TilesetNode, 0, len(j.tree.Nodes[index].Children))
	for _, child := range j.tree.Nodes[index].Children {
		if result := j.results[child]; result != nil {
			children = append(children, result)
		}
	}
	return children
}

func (j *Join) Result(index int) *tileset.TilesetNode {
	return j.results[index]
}
