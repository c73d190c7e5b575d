// Package container abstracts the on-disk HDF5 hierarchy behind small
// read-only interfaces so the crawler and the tests do not depend on a
// concrete file implementation.
package container

import "github.com/simonhull/wavesurfer/internal/types"

// Kind classifies a child of a group.
type Kind int

const (
	// KindGroup is a nested group.
	KindGroup Kind = iota
	// KindDataset is a leaf dataset.
	KindDataset
	// KindOther is an object that is neither a group nor a dataset,
	// such as a dangling link. Callers skip these.
	KindOther
)

// Node is one child of a group. Exactly one of Group or Dataset is
// non-nil, matching Kind; both are nil for KindOther.
type Node struct {
	Name    string
	Kind    Kind
	Group   Group
	Dataset Dataset
}

// Group is a read-only view of an HDF5 group.
type Group interface {
	// Children lists the group's members in file order.
	Children() ([]Node, error)
}

// Dataset is a read-only view of an HDF5 dataset.
type Dataset interface {
	// Dims returns the dataset shape. Scalars report an empty shape.
	Dims() []int
	// Read decodes the dataset into a Scalar or an Array.
	Read() (types.Value, error)
}

// File is an open container. Close releases the underlying handle and
// is safe to call more than once.
type File interface {
	Group
	Close() error
}
