package container

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/simonhull/wavesurfer/internal/types"
)

// OpenHDF5 opens the file at path and wraps it as a File. The caller
// owns the returned handle and must Close it.
func OpenHDF5(path string) (File, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &hdf5File{f: f}, nil
}

type hdf5File struct {
	f *hdf5.File
}

func (f *hdf5File) Children() ([]Node, error) {
	g := hdf5Group{g: f.f.Root()}
	return g.Children()
}

func (f *hdf5File) Close() error {
	return f.f.Close()
}

type hdf5Group struct {
	g *hdf5.Group
}

func (g *hdf5Group) Children() ([]Node, error) {
	members, err := g.g.Members()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", g.g.Path(), err)
	}
	nodes := make([]Node, 0, len(members))
	for _, name := range members {
		node, err := g.classify(name)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// classify resolves one member. Objects that are neither groups nor
// datasets come back as KindOther rather than an error.
func (g *hdf5Group) classify(name string) (Node, error) {
	child, err := g.g.OpenGroup(name)
	if err == nil {
		return Node{Name: name, Kind: KindGroup, Group: &hdf5Group{g: child}}, nil
	}
	if !errors.Is(err, hdf5.ErrNotGroup) {
		return Node{}, fmt.Errorf("opening %q: %w", name, err)
	}

	ds, err := g.g.OpenDataset(name)
	if err == nil {
		return Node{Name: name, Kind: KindDataset, Dataset: &hdf5Dataset{d: ds}}, nil
	}
	if errors.Is(err, hdf5.ErrNotDataset) {
		return Node{Name: name, Kind: KindOther}, nil
	}
	return Node{}, fmt.Errorf("opening %q: %w", name, err)
}

type hdf5Dataset struct {
	d *hdf5.Dataset
}

func (d *hdf5Dataset) Dims() []int {
	dims := d.d.Shape()
	out := make([]int, len(dims))
	for i, v := range dims {
		out[i] = int(v)
	}
	return out
}

// Read decodes the dataset. Single-element datasets become scalars,
// matching the MATLAB convention of writing 1x1 values for settings.
// Datasets with element types we cannot map keep their raw bytes.
func (d *hdf5Dataset) Read() (types.Value, error) {
	t, err := d.d.GoType()
	if err != nil {
		return d.readRaw()
	}

	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		data, err := d.d.ReadFloat64()
		if err != nil {
			return nil, d.readErr(err)
		}
		return wrap(d, data, types.Float)
	case reflect.Int16:
		data, err := d.d.ReadInt16()
		if err != nil {
			return nil, d.readErr(err)
		}
		return wrap(d, data, func(v int16) *types.Scalar { return types.Int(int64(v)) })
	case reflect.Int8, reflect.Int32, reflect.Int64,
		reflect.Uint16, reflect.Uint32, reflect.Uint64:
		data, err := d.d.ReadInt64()
		if err != nil {
			return nil, d.readErr(err)
		}
		return wrap(d, data, types.Int)
	case reflect.Uint8:
		data, err := d.d.ReadUint8()
		if err != nil {
			return nil, d.readErr(err)
		}
		return wrap(d, data, func(v uint8) *types.Scalar { return types.Int(int64(v)) })
	case reflect.String:
		data, err := d.d.ReadString()
		if err != nil {
			return nil, d.readErr(err)
		}
		return wrap(d, data, types.Text)
	default:
		return d.readRaw()
	}
}

// wrap packages a decoded slice as a Scalar or an Array.
func wrap[T any](d *hdf5Dataset, data []T, scalar func(T) *types.Scalar) (types.Value, error) {
	if d.d.NumElements() == 1 && len(data) == 1 {
		return scalar(data[0]), nil
	}
	arr, err := types.NewArray(d.Dims(), data)
	if err != nil {
		return nil, d.readErr(err)
	}
	return arr, nil
}

func (d *hdf5Dataset) readRaw() (types.Value, error) {
	raw, err := d.d.ReadRaw()
	if err != nil {
		return nil, d.readErr(err)
	}
	arr, err := types.NewArray([]int{len(raw)}, raw)
	if err != nil {
		return nil, d.readErr(err)
	}
	return arr, nil
}

func (d *hdf5Dataset) readErr(err error) error {
	return fmt.Errorf("reading %s: %w", d.d.Path(), err)
}
