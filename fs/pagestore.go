package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/phylotext"
)

// pageExt is the extension of stored pages.
const pageExt = ".txt"

// Ensure PageStore implements phylotext.PageStore at compile time.
var _ phylotext.PageStore = (*PageStore)(nil)

// PageStore keeps one text file per family, named after the family.
// Each Save replaces its file atomically, so an interrupted fetch never
// leaves a truncated page behind.
type PageStore struct {
	dir string
}

// NewPageStore creates a PageStore rooted at dir.
func NewPageStore(dir string) *PageStore {
	return &PageStore{dir: dir}
}

// Dir returns the directory holding the pages.
func (s *PageStore) Dir() string {
	return s.dir
}

// PagePath returns the file a family's page is stored in. Returns EINVALID
// for names that would escape the store directory.
func (s *PageStore) PagePath(family string) (string, error) {
	if family == "" || family == "." || family == ".." ||
		strings.ContainsAny(family, `/\`+"\x00") {
		return "", phylotext.Errorf(phylotext.EINVALID, "family name %q rejected: path traversal", family)
	}
	return filepath.Join(s.dir, family+pageExt), nil
}

// Save writes the page content.
func (s *PageStore) Save(ctx context.Context, page *phylotext.Page) error {
	path, err := s.PagePath(page.Family)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, []byte(page.Content))
}

// Has reports whether a non-empty page is stored for the family.
func (s *PageStore) Has(family string) bool {
	path, err := s.PagePath(family)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// Load returns the stored content of a family's page.
func (s *PageStore) Load(family string) (string, error) {
	path, err := s.PagePath(family)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", phylotext.Errorf(phylotext.ENOTFOUND, "no page stored for %q", family)
	}
	return string(b), err
}

// Families lists the families with a stored page, in ascending file name
// order. A missing directory yields an empty list.
func (s *PageStore) Families() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), pageExt) && !strings.HasPrefix(e.Name(), ".") {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)

	families := make([]string, len(files))
	for i, f := range files {
		families[i] = strings.TrimSuffix(f, pageExt)
	}
	return families, nil
}

// Transform writes transform(content) of every page in s to dst, keeping
// family names. It returns the number of pages written.
func (s *PageStore) Transform(ctx context.Context, dst *PageStore, transform func(string) string) (int, error) {
	families, err := s.Families()
	if err != nil {
		return 0, err
	}
	for i, family := range families {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		content, err := s.Load(family)
		if err != nil {
			return i, err
		}
		if err := dst.Save(ctx, &phylotext.Page{Family: family, Content: transform(content)}); err != nil {
			return i, err
		}
	}
	return len(families), nil
}
