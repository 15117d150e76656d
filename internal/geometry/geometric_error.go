package geometry

import (
	"fmt"
	"strings"
)

// Error of a tile computed from the ordered errors of its surviving children: zero for a leaf,
// otherwise twice the error of the first child. The other children are ignored.
func GeometricError(childErrors []float64) float64 {
	if len(childErrors) == 0 {
		return 0
	}
	return 2 * childErrors[0]
}

// Published aggregation result of an already built child tile
type ChildResult struct {
	GeometricError float64
	BoundingVolume BoundingVolume
}

// Computes a parent's geometric error from its children, in child order
type GeometricErrorPolicy interface {
	Name() string
	Compute(children []ChildResult) float64
}

const (
	PolicyFirstChild       = "first-child"
	PolicyFirstChildExtent = "first-child-extent"
)

// Doubles the first child's geometric error, see GeometricError
type FirstChildDoubled struct{}

func (FirstChildDoubled) Name() string {
	return PolicyFirstChild
}

func (FirstChildDoubled) Compute(children []ChildResult) float64 {
	errs := make([]float64, len(children))
	for i, child := range children {
		errs[i] = child.GeometricError
	}
	return GeometricError(errs)
}

// Doubles the error implied by the first child's box (largest extent / 20)
type FirstChildExtentDoubled struct{}

func (FirstChildExtentDoubled) Name() string {
	return PolicyFirstChildExtent
}

func (FirstChildExtentDoubled) Compute(children []ChildResult) float64 {
	if len(children) == 0 {
		return 0
	}
	return GeometricError([]float64{BoxGeometricError(children[0].BoundingVolume)})
}

// Geometric error implied by a box alone
func BoxGeometricError(b BoundingVolume) float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxExtent() / 20
}

// Returns the policy registered under the given name. Empty name selects the default policy.
func ParseGeometricErrorPolicy(name string) (GeometricErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyFirstChild:
		return FirstChildDoubled{}, nil
	case PolicyFirstChildExtent:
		return FirstChildExtentDoubled{}, nil
	}
	return nil, fmt.Errorf("unknown geometric error policy %q", name)
}
