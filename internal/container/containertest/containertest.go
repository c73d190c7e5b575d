// Package containertest provides an in-memory container implementation
// for tests, so package tests can build arbitrary hierarchies without
// writing HDF5 files to disk.
package containertest

import (
	"fmt"

	"github.com/simonhull/wavesurfer/internal/container"
	"github.com/simonhull/wavesurfer/internal/types"
)

// File is an in-memory container.File. CloseCalls counts Close
// invocations so tests can assert the handle is released exactly once.
type File struct {
	Root       *Group
	CloseCalls int
	CloseErr   error
}

// NewFile wraps root as an open file.
func NewFile(root *Group) *File {
	return &File{Root: root}
}

func (f *File) Children() ([]container.Node, error) {
	return f.Root.Children()
}

func (f *File) Close() error {
	f.CloseCalls++
	return f.CloseErr
}

// Group is an in-memory container.Group. Err, when set, is returned
// from Children instead of the node list.
type Group struct {
	nodes []container.Node
	Err   error
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{}
}

func (g *Group) Children() ([]container.Node, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	out := make([]container.Node, len(g.nodes))
	copy(out, g.nodes)
	return out, nil
}

// AddGroup appends a nested group and returns it for population.
func (g *Group) AddGroup(name string) *Group {
	child := NewGroup()
	g.nodes = append(g.nodes, container.Node{Name: name, Kind: container.KindGroup, Group: child})
	return child
}

// AddValue appends a dataset holding v. The dims are derived from v.
func (g *Group) AddValue(name string, v types.Value) *Dataset {
	ds := &Dataset{value: v}
	g.nodes = append(g.nodes, container.Node{Name: name, Kind: container.KindDataset, Dataset: ds})
	return ds
}

// AddScalar appends a single-element dataset.
func (g *Group) AddScalar(name string, s *types.Scalar) *Dataset {
	return g.AddValue(name, s)
}

// AddArray appends an array dataset. It panics if dims and data
// disagree, since that is a mistake in the test itself.
func (g *Group) AddArray(name string, dims []int, data any) *Dataset {
	arr, err := types.NewArray(dims, data)
	if err != nil {
		panic(fmt.Sprintf("containertest: %s: %v", name, err))
	}
	return g.AddValue(name, arr)
}

// AddOther appends a node that is neither a group nor a dataset.
func (g *Group) AddOther(name string) {
	g.nodes = append(g.nodes, container.Node{Name: name, Kind: container.KindOther})
}

// Dataset is an in-memory container.Dataset. Err, when set, is
// returned from Read instead of the value.
type Dataset struct {
	value types.Value
	Err   error
}

func (d *Dataset) Dims() []int {
	switch v := d.value.(type) {
	case *types.Array:
		return v.Dims()
	default:
		return nil
	}
}

func (d *Dataset) Read() (types.Value, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.value, nil
}
