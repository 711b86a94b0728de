// Package options persists the calculator settings, and optionally the stack
// and memory, in a YAML file.
package options

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v2"

	"github.com/doug-101/rpcalc/pkg/calc"
)

var logger = loggo.GetLogger("rpcalc.options")

// DefaultName is the options file name looked up in the home directory.
const DefaultName = ".rpcalc.yaml"

// File is the on-disk layout. Stack and memory are only written when
// SaveStacks is set.
type File struct {
	calc.Settings `yaml:",inline"`
	Stack         []float64 `yaml:"Stack,omitempty"`
	Mem           []float64 `yaml:"Mem,omitempty"`
}

// Default returns an options file holding the default settings.
func Default() *File {
	return &File{Settings: calc.DefaultSettings()}
}

// DefaultPath returns the options file path in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Annotate(err, "locating home directory")
	}
	return filepath.Join(home, DefaultName), nil
}

// Load reads the options file at path. A missing file yields the defaults.
// Keys absent from the file keep their default values and out of range
// values are clamped.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Infof("no options file at %s, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "reading options %s", path)
	}

	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Annotatef(err, "parsing options %s", path)
	}
	f.Settings.Normalize()
	if len(f.Stack) > calc.StackSize {
		logger.Warningf("options %s: ignoring %d extra stack values", path, len(f.Stack)-calc.StackSize)
	}
	if len(f.Mem) > calc.MemorySize {
		logger.Warningf("options %s: ignoring %d extra memory values", path, len(f.Mem)-calc.MemorySize)
	}
	return f, nil
}

// Save writes f to path.
func Save(path string, f *File) error {
	out := *f
	if !out.SaveStacks {
		out.Stack, out.Mem = nil, nil
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Annotatef(err, "writing options %s", path)
	}
	return nil
}

// Capture records the engine's settings, and its stack and memory when the
// settings ask for them to be saved.
func Capture(e *calc.Engine) *File {
	f := &File{Settings: e.Settings()}
	if f.SaveStacks {
		st := e.State()
		f.Stack = append([]float64(nil), st.Stack[:]...)
		f.Mem = append([]float64(nil), st.Mem[:]...)
	}
	return f
}

// Apply configures e from f. Saved stack and memory values are restored
// only when SaveStacks is set; missing values read as zero.
func (f *File) Apply(e *calc.Engine) {
	e.SetSettings(f.Settings)
	if !f.SaveStacks {
		return
	}
	var st calc.State
	copy(st.Stack[:], f.Stack)
	copy(st.Mem[:], f.Mem)
	e.Restore(st.Stack, st.Mem)
}
