package tileset

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/ecopia-map/osgb_tiler/internal/b3dm"
	"github.com/ecopia-map/osgb_tiler/internal/scene"
)

const levelMarker = "_L"

// One tile of the level of detail hierarchy. Children are indices in the owning LevelTree.
type TileNode struct {
	Name         string
	Directory    string
	SourcePath   string
	LevelNumber  int
	TileBaseName string
	Children     []int
}

func (n *TileNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Arena holding the tiles discovered from a root tile file
type LevelTree struct {
	Nodes []TileNode
	Root  int
}

// Parses N from the first "_L<N>_" marker of the tile name, 0 when absent or not a number
func ParseLevelNumber(name string) int {
	p0 := strings.Index(name, levelMarker)
	if p0 < 0 {
		return 0
	}
	p1 := strings.Index(name[p0+len(levelMarker):], "_")
	if p1 < 0 {
		return 0
	}
	level, err := strconv.Atoi(name[p0+len(levelMarker) : p0+len(levelMarker)+p1])
	if err != nil {
		return 0
	}
	return level
}

// Part of the tile name before the level marker, the whole name when there is no marker
func ParseTileBaseName(name string) string {
	p0 := strings.Index(name, levelMarker)
	if p0 < 0 {
		return name
	}
	return name[:p0]
}

// Tile name of a tile file, i.e. its base file name without extension
func TileNameFromPath(filePath string) string {
	nameWext := filepath.Base(filePath)
	extension := filepath.Ext(nameWext)
	return nameWext[0 : len(nameWext)-len(extension)]
}

// Name of the container file written for the given tile name
func OutputFileName(name string) string {
	return name + b3dm.FileExtension
}

// Uri of a tile's container relative to the folder of the root tile, where tileset.json is written
func ContentURI(rootBaseName string, node *TileNode) string {
	if node.TileBaseName == rootBaseName {
		return "./" + OutputFileName(node.Name)
	}
	return "../" + node.TileBaseName + "/" + OutputFileName(node.Name)
}

func IsLevelInBound(level, maxLevel int) bool {
	return level >= 0 && level < maxLevel
}

// Recursively walks the child tile references starting from the given tile file.
// Returns false if the root tile itself is out of the level bound or cannot be opened.
func Discover(adapter scene.Adapter, filePath string, maxLevel int) (*LevelTree, bool) {
	tree := &LevelTree{}
	root, ok := tree.discover(adapter, filepath.Clean(filePath), maxLevel, map[string]bool{})
	if !ok {
		return nil, false
	}
	tree.Root = root
	return tree, true
}

func (t *LevelTree) discover(adapter scene.Adapter, filePath string, maxLevel int, ancestors map[string]bool) (int, bool) {
	name := TileNameFromPath(filePath)
	level := ParseLevelNumber(name)
	if !IsLevelInBound(level, maxLevel) {
		glog.V(2).Infof("skipping tile %s: level %d out of [0, %d)", filePath, level, maxLevel)
		return -1, false
	}

	s, err := adapter.Open(filePath)
	if err != nil {
		glog.Warningf("skipping tile %s: %v", filePath, err)
		return -1, false
	}

	directory := filepath.Dir(filePath)
	index := len(t.Nodes)
	t.Nodes = append(t.Nodes, TileNode{
		Name:         name,
		Directory:    directory,
		SourcePath:   filePath,
		LevelNumber:  level,
		TileBaseName: ParseTileBaseName(name),
	})

	ancestors[filePath] = true
	defer delete(ancestors, filePath)

	// the first reference is the tile's own representation
	references := s.ChildTileReferences()
	for i := 1; i < len(references); i++ {
		childPath := filepath.Join(directory, references[i])
		if ancestors[childPath] {
			glog.Warningf("skipping tile %s: referenced by its own subtree", childPath)
			continue
		}
		if child, ok := t.discover(adapter, childPath, maxLevel, ancestors); ok {
			t.Nodes[index].Children = append(t.Nodes[index].Children, child)
		}
	}

	return index, true
}

func (t *LevelTree) RootNode() *TileNode {
	return &t.Nodes[t.Root]
}

// Index of the parent of every node, -1 for the root
func (t *LevelTree) Parents() []int {
	parents := make([]int, len(t.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, node := range t.Nodes {
		for _, child := range node.Children {
			parents[child] = i
		}
	}
	return parents
}

// Indices of the nodes without children, in discovery order
func (t *LevelTree) Leaves() []int {
	leaves := make([]int, 0)
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

// Distinct tile base names, in discovery order
func (t *LevelTree) TileBaseNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, node := range t.Nodes {
		if !seen[node.TileBaseName] {
			seen[node.TileBaseName] = true
			names = append(names, node.TileBaseName)
		}
	}
	return names
}
