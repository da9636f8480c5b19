package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"falcon9/internal/model"
)

// ErrModelUnavailable means no candidate location yielded a usable artifact.
var ErrModelUnavailable = errors.New("model unavailable")

// Candidate is one place the artifact may live.
type Candidate struct {
	Name string
	Path string
}

// Opener opens an artifact path. It returns an error matching fs.ErrNotExist
// when nothing is there.
type Opener func(path string) (io.ReadCloser, error)

func OSOpener(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Attempt records why a candidate was skipped.
type Attempt struct {
	Candidate Candidate
	Err       error
}

// LoadError lists every failed attempt. It matches ErrModelUnavailable.
type LoadError struct {
	Attempts []Attempt
}

func (e *LoadError) Error() string {
	if len(e.Attempts) == 0 {
		return "model unavailable: no candidate locations"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s): %v", a.Candidate.Name, a.Candidate.Path, a.Err))
	}
	return "model unavailable: " + strings.Join(parts, "; ")
}

func (e *LoadError) Is(target error) bool {
	return target == ErrModelUnavailable
}

// Loaded is an artifact together with the candidate it came from.
type Loaded struct {
	Pipeline *model.Pipeline
	Source   Candidate
}

// Loader tries candidates in order and keeps the first that decodes.
type Loader struct {
	Candidates []Candidate
	Open       Opener
	Logger     *zap.Logger
}

func (l *Loader) Load(ctx context.Context) (*Loaded, error) {
	open := l.Open
	if open == nil {
		open = OSOpener
	}
	loadErr := &LoadError{}
	for _, c := range l.Candidates {
		if err := ctx.Err(); err != nil {
			loadErr.Attempts = append(loadErr.Attempts, Attempt{Candidate: c, Err: err})
			return nil, loadErr
		}
		p, err := l.try(open, c)
		if err != nil {
			loadErr.Attempts = append(loadErr.Attempts, Attempt{Candidate: c, Err: err})
			if l.Logger != nil {
				l.Logger.Debug("artifact candidate skipped",
					zap.String("candidate", c.Name),
					zap.String("path", c.Path),
					zap.Error(err),
				)
			}
			continue
		}
		if l.Logger != nil {
			l.Logger.Info("artifact loaded",
				zap.String("candidate", c.Name),
				zap.String("path", c.Path),
				zap.String("model", p.Name),
				zap.String("version", p.Version),
				zap.Int("trees", p.Trees()),
			)
		}
		return &Loaded{Pipeline: p, Source: c}, nil
	}
	return nil, loadErr
}

func (l *Loader) try(open Opener, c Candidate) (p *model.Pipeline, err error) {
	f, err := open(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}
		return nil, err
	}
	if f == nil {
		return nil, errors.New("opener returned no reader")
	}
	defer f.Close()
	// a corrupt document must not take the caller down
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("decode panicked: %v", r)
		}
	}()
	return Decode(f)
}

// SearchPaths describes where to look for a named model.
type SearchPaths struct {
	ModelName   string
	Explicit    string
	ExeDir      string
	WorkDir     string
	ProjectRoot string
}

// Candidates expands the search paths in priority order: explicit path,
// next to the executable, working directory, project root. Each directory
// contributes models/<name>.json and models/<name>.json.gz.
func (s SearchPaths) Candidates() []Candidate {
	var out []Candidate
	if s.Explicit != "" {
		out = append(out, Candidate{Name: "explicit", Path: s.Explicit})
	}
	seen := map[string]bool{}
	add := func(name, dir string) {
		if dir == "" {
			return
		}
		dir = filepath.Clean(dir)
		if seen[dir] {
			return
		}
		seen[dir] = true
		base := filepath.Join(dir, "models", s.ModelName)
		out = append(out,
			Candidate{Name: name, Path: base + ".json"},
			Candidate{Name: name, Path: base + ".json.gz"},
		)
	}
	add("executable", s.ExeDir)
	add("workdir", s.WorkDir)
	add("project", s.ProjectRoot)
	return out
}

// DefaultSearchPaths fills the executable and working directories from the
// running process.
func DefaultSearchPaths(modelName, explicit, projectRoot string) SearchPaths {
	sp := SearchPaths{ModelName: modelName, Explicit: explicit, ProjectRoot: projectRoot}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		sp.ExeDir = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		sp.WorkDir = wd
	}
	return sp
}
