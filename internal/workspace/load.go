package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

var log = commonlog.GetLogger("rbsparse.workspace")

// File is one loaded signature file. Err holds the read, depth, or parse
// error; Decls is nil when Err is set.
type File struct {
	Path   string
	Buffer *location.Buffer
	Decls  []ast.Decl
	Err    error
}

// Loader parses signature files with a bounded number of workers.
type Loader struct {
	Workers    int
	MaxDepth   int
	Extensions []string
}

func NewLoader(workers, maxDepth int, extensions []string) *Loader {
	return &Loader{Workers: workers, MaxDepth: maxDepth, Extensions: extensions}
}

// Parse guards buf against deep nesting and parses its declarations.
func (l *Loader) Parse(buf *location.Buffer) ([]ast.Decl, error) {
	if err := CheckDepth(buf, l.MaxDepth); err != nil {
		return nil, err
	}
	return parser.ParseSignature(buf, parser.WithMaxDepth(l.MaxDepth))
}

// ParseType is parser.ParseType behind the same nesting guards as Parse.
func (l *Loader) ParseType(buf *location.Buffer, opts ...parser.Option) (ast.Type, error) {
	if err := CheckDepth(buf, l.MaxDepth); err != nil {
		return nil, err
	}
	return parser.ParseType(buf, append(opts, parser.WithMaxDepth(l.MaxDepth))...)
}

// ParseMethodType is parser.ParseMethodType behind the same nesting guards
// as Parse.
func (l *Loader) ParseMethodType(buf *location.Buffer, opts ...parser.Option) (*ast.MethodType, error) {
	if err := CheckDepth(buf, l.MaxDepth); err != nil {
		return nil, err
	}
	return parser.ParseMethodType(buf, append(opts, parser.WithMaxDepth(l.MaxDepth))...)
}

// LoadFiles reads and parses paths concurrently. Results are in the order of
// paths; per-file failures are recorded on the File. The returned error is
// non-nil only when ctx is cancelled.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]*File, error) {
	files := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Workers, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = l.loadFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (l *Loader) loadFile(path string) *File {
	file := &File{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		file.Err = fmt.Errorf("read %s: %w", path, err)
		return file
	}
	file.Buffer = location.NewBuffer(path, string(content))

	file.Decls, file.Err = l.Parse(file.Buffer)
	if file.Err != nil {
		log.Debugf("%s: %s", path, file.Err)
	} else {
		log.Debugf("%s: %d declarations", path, len(file.Decls))
	}
	return file
}

// Expand replaces each directory in paths with the signature files below it.
// Plain files are kept even when their extension does not match.
func (l *Loader) Expand(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && l.Matches(p) {
				out = append(out, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Matches reports whether path has one of the signature file extensions.
func (l *Loader) Matches(path string) bool {
	return slices.Contains(l.Extensions, filepath.Ext(path))
}
