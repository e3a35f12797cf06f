package compliance

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver decides whether qualifying evidence exists for an artifact spec.
// It returns an error only for real I/O or pattern failures; "not found" is
// (false, nil).
type Resolver interface {
	Exists(spec string) (bool, error)
}

// PathResolver resolves artifact specs against a root directory. Relative
// specs are interpreted below the root; absolute specs are used as-is.
type PathResolver struct {
	root string
}

// NewPathResolver creates a resolver rooted at dir. An empty dir means the
// current working directory.
func NewPathResolver(dir string) *PathResolver {
	if dir == "" {
		dir = "."
	}
	return &PathResolver{root: dir}
}

// Exists reports whether the spec matches at least one file or directory.
// An empty spec never matches. Specs containing glob metacharacters are
// matched recursively (** is supported); anything else is a direct
// existence check.
func (r *PathResolver) Exists(spec string) (bool, error) {
	if spec == "" {
		return false, nil
	}
	if strings.ContainsAny(spec, "*?[") {
		return r.glob(spec)
	}
	_, err := os.Stat(r.resolve(spec))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (r *PathResolver) glob(pattern string) (bool, error) {
	matches, err := doublestar.FilepathGlob(r.resolve(pattern))
	if err != nil {
		// Only doublestar.ErrBadPattern reaches here; unreadable
		// directories are skipped during the walk.
		return false, err
	}
	return len(matches) > 0, nil
}

func (r *PathResolver) resolve(spec string) string {
	if filepath.IsAbs(spec) {
		return spec
	}
	return filepath.Join(r.root, spec)
}
