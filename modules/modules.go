// Package modules loads programs and the optional signa.yaml workspace
// manifest that configures how they are analyzed.
package modules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"signa/ast"
	"signa/parser"
	"signa/typechecking"

	"gopkg.in/yaml.v3"
)

const ManifestName = "signa.yaml"

type Manifest struct {
	Name     string              `yaml:"name"`
	Analysis AnalysisConfig      `yaml:"analysis"`
	Log      LogConfig           `yaml:"log"`
	Programs []ProgramDefinition `yaml:"programs"`
}

type AnalysisConfig struct {
	MaxIterations int `yaml:"max_iterations"`

	// FreshReads gives every evaluation of a read expression its own value
	// instead of reusing the first one.
	FreshReads bool `yaml:"fresh_reads"`
}

type LogConfig struct {
	// Level defaults to warn.
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type ProgramDefinition struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// LoadManifestFrom reads signa.yaml from dir. A missing manifest yields the
// defaults.
func LoadManifestFrom(dir string) (*Manifest, error) {
	m := &Manifest{}

	file := path.Join(dir, ManifestName)
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ManifestName, err)
	}

	err = yaml.Unmarshal(data, m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestName, err)
	}

	for i, p := range m.Programs {
		if p.Source == "" {
			return nil, fmt.Errorf("failed to parse %s: program %d has no source", ManifestName, i)
		}
		if p.Name == "" {
			m.Programs[i].Name = p.Source
		}
	}

	return m, nil
}

type Workspace struct {
	Dir      string
	Manifest *Manifest

	once     sync.Once
	programs []*Program
	err      error
}

func LoadWorkspaceFrom(dir string) (*Workspace, error) {
	if dir == "" {
		dir = "."
	}
	m, err := LoadManifestFrom(dir)
	if err != nil {
		return nil, err
	}
	return &Workspace{Dir: dir, Manifest: m}, nil
}

// Program is a parsed and checked source file.
type Program struct {
	Name   string
	Path   string
	Source []byte

	AST     *ast.Program
	Context *typechecking.Context
}

// LoadProgram reads, parses and checks the file at p. Parse and check
// failures are *runtime.Error values; the returned Program still carries
// the source so they can be rendered.
func LoadProgram(name, p string) (*Program, error) {
	src, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to load program at %s: %w", p, err)
	}

	prog := &Program{Name: name, Path: p, Source: src}

	prog.AST, err = parser.Parse(src)
	if err != nil {
		return prog, err
	}

	prog.Context, err = typechecking.Check(prog.AST)
	if err != nil {
		return prog, err
	}

	return prog, nil
}

// Programs loads every program listed in the manifest, stopping at the
// first one that fails.
func (w *Workspace) Programs() ([]*Program, error) {
	w.once.Do(func() {
		for _, def := range w.Manifest.Programs {
			src := def.Source
			if !path.IsAbs(src) {
				src = path.Join(w.Dir, src)
			}
			prog, err := LoadProgram(def.Name, src)
			if err != nil {
				w.programs = append(w.programs, prog)
				w.err = err
				return
			}
			w.programs = append(w.programs, prog)
		}
	})
	return w.programs, w.err
}
