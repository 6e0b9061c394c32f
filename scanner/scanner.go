// Package scanner discovers tool schema files in a directory.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/effective-security/toolhost/pkg/metricskey"
	"github.com/effective-security/toolhost/pkg/schema"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost", "scanner")

// Skipped describes a schema file excluded from the result.
type Skipped struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result of a scan.
type Result struct {
	// Dir is the scanned directory
	Dir string
	// Schemas is keyed by tool name, in filename order.
	Schemas *orderedmap.OrderedMap[string, *schema.ToolSchema]
	// Skipped lists the files that could not be loaded.
	Skipped []Skipped
}

// Names returns the discovered tool names in order.
func (r *Result) Names() []string {
	names := make([]string, 0, r.Schemas.Len())
	for pair := r.Schemas.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// List returns the discovered schemas in order.
func (r *Result) List() []*schema.ToolSchema {
	list := make([]*schema.ToolSchema, 0, r.Schemas.Len())
	for pair := r.Schemas.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, pair.Value)
	}
	return list
}

// Get returns the schema by tool name.
func (r *Result) Get(name string) (*schema.ToolSchema, bool) {
	return r.Schemas.Get(name)
}

// Len returns the number of discovered schemas.
func (r *Result) Len() int {
	return r.Schemas.Len()
}

// Option configures the Scanner
type Option func(*Scanner)

// WithExtension sets the schema file extension, ".json" by default.
func WithExtension(ext string) Option {
	return func(s *Scanner) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = values.StringsCoalesce(ext, schema.DefaultExtension)
	}
}

// Scanner reads tool schemas from a directory.
type Scanner struct {
	ext string
}

// New returns a Scanner
func New(opts ...Option) *Scanner {
	s := &Scanner{ext: schema.DefaultExtension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extension returns the schema file extension.
func (s *Scanner) Extension() string {
	return s.ext
}

// Scan reads schemas from the directory with the default options.
func Scan(dir string) *Result {
	return New().Scan(dir)
}

// Scan reads every schema file in the directory, in lexicographic order.
// Files that fail to load are skipped and reported in Result.Skipped.
// A missing directory produces an empty result.
func (s *Scanner) Scan(dir string) *Result {
	res := &Result{
		Dir:     dir,
		Schemas: orderedmap.New[string, *schema.ToolSchema](),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.KV(xlog.DEBUG, "status", "dir_not_found", "dir", dir)
		} else {
			logger.KV(xlog.WARNING, "status", "failed_to_read_dir", "dir", dir, "err", err.Error())
		}
		return res
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		tool := strings.TrimSuffix(name, s.ext)

		data, err := os.ReadFile(path)
		if err == nil {
			var sc *schema.ToolSchema
			sc, err = schema.Parse(tool, data)
			if err == nil {
				sc.Source = path
				res.Schemas.Set(tool, sc)
				continue
			}
		}

		logger.KV(xlog.WARNING, "status", "skipped", "file", path, "err", err.Error())
		metricskey.StatsSchemasSkipped.IncrCounter(1, name)
		res.Skipped = append(res.Skipped, Skipped{File: path, Reason: err.Error()})
	}

	logger.KV(xlog.DEBUG, "dir", dir, "discovered", res.Schemas.Len(), "skipped", len(res.Skipped))
	return res
}
