package learning

import (
	"bytes"
	"encoding/gob"
	"github.com/ProfessorX0227/fare/boost"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
)

const magic = "fare-model"

// FormatVersion is the version of the on-disk model format written by Save.
const FormatVersion = 1

type blob struct {
	Magic   string
	Version int
	Model   Model
}

// flat keeps every key directly in the store's base path.
func flat(string) []string {
	return []string{}
}

// store opens a diskv store rooted at the directory of path, keyed by its file name.
func store(path string) (*diskv.Diskv, string) {
	dir, key := filepath.Split(filepath.Clean(path))
	if len(dir) == 0 {
		dir = "."
	}
	return diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    flat,
		CacheSizeMax: 0,
		Compression:  diskv.NewGzipCompression(),
	}), key
}

// Save writes m to path, replacing any existing file. Failures, including a nil m, are
// fault.IO errors.
func Save(m *Model, path string) error {
	const op = "learning.Save"
	if m == nil {
		return fault.New(fault.IO, op, "no model to save to %s", path)
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(blob{
		Magic:   magic,
		Version: FormatVersion,
		Model:   *m,
	})
	if err != nil {
		return fault.Wrap(fault.IO, op, err)
	}

	d, key := store(path)
	if err := d.Write(key, buf.Bytes()); err != nil {
		return fault.Wrap(fault.IO, op, errors.Wrap(err, path))
	}
	return nil
}

// Load reads a model written by Save. A missing or unreadable file is a fault.IO error; a file
// that is not a model of a supported format version is a fault.Deserialization error.
func Load(path string) (*Model, error) {
	const op = "learning.Load"
	d, key := store(path)
	if !d.Has(key) {
		return nil, fault.Wrap(fault.IO, op, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist})
	}

	b, err := d.Read(key)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fault.Wrap(fault.IO, op, err)
		}
		return nil, fault.Wrap(fault.Deserialization, op, errors.Wrap(err, path))
	}

	var bl blob
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&bl); err != nil {
		return nil, fault.Wrap(fault.Deserialization, op, errors.Wrap(err, path))
	}
	if bl.Magic != magic {
		return nil, fault.New(fault.Deserialization, op, "%s is not a model file", path)
	}
	if bl.Version != FormatVersion {
		return nil, fault.New(fault.Deserialization, op, "%s has format version %d, expected %d", path, bl.Version, FormatVersion)
	}
	if err := bl.Model.validate(); err != nil {
		return nil, fault.Wrap(fault.Deserialization, op, errors.Wrap(err, path))
	}
	return &bl.Model, nil
}

// validate checks the decoded steps are usable.
func (m *Model) validate() error {
	if len(m.Steps) == 0 {
		return errors.New("model has no steps")
	}
	for i, f := range m.Steps {
		switch f.Kind {
		case CopyStep, OneHotStep:
			if len(f.Inputs) != 1 {
				return errors.Errorf("step %d (%s) has %d inputs", i, f.Kind, len(f.Inputs))
			}
		case ConcatStep:
			if len(f.Widths) != len(f.Inputs) {
				return errors.Errorf("step %d (%s) has %d widths for %d inputs", i, f.Kind, len(f.Widths), len(f.Inputs))
			}
		case TrainStep:
			if f.Ensemble == nil || len(f.Inputs) != 2 {
				return errors.Errorf("step %d (%s) is incomplete", i, f.Kind)
			}
			for j, t := range f.Ensemble.Trees {
				if !wellFormed(t, f.Ensemble.Width) {
					return errors.Errorf("step %d (%s): tree %d is malformed", i, f.Kind, j)
				}
			}
		default:
			return errors.Errorf("step %d has unknown kind %d", i, f.Kind)
		}
	}
	return nil
}

// wellFormed checks every reference in t points inside the tree.
func wellFormed(t boost.Tree, width int) bool {
	if len(t.Leaves) != len(t.Nodes)+1 {
		return false
	}
	// Children always come after their parent, which also rules out cycles.
	ref := func(parent, child int) bool {
		if child < 0 {
			return ^child < len(t.Leaves)
		}
		return child > parent && child < len(t.Nodes)
	}
	for i, n := range t.Nodes {
		if n.Feature < 0 || n.Feature >= width || !ref(i, n.Left) || !ref(i, n.Right) {
			return false
		}
	}
	return true
}
