package fs

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/phylotext"
)

// Artifact file names inside the artifact directory.
const (
	FamiliesFile = "families.txt"
	CladesDir    = "clades"
	IndexFile    = "index.txt"
	CorpusFile   = "corpus.tsv"
	AssignDir    = "assignments"
	ReportsDir   = "reports"
	FailuresFile = "failures.txt"
)

// Artifacts reads and writes the human-readable pipeline artifacts of one
// run. No locking is done; two runs must not share a directory.
type Artifacts struct {
	dir string
}

// NewArtifacts creates Artifacts rooted at dir.
func NewArtifacts(dir string) *Artifacts {
	return &Artifacts{dir: dir}
}

// Path returns the location of an artifact.
func (a *Artifacts) Path(elem ...string) string {
	return filepath.Join(append([]string{a.dir}, elem...)...)
}

// WriteTaxonomy writes the global family list and one list per clade.
func (a *Artifacts) WriteTaxonomy(tax *phylotext.Taxonomy) error {
	if err := writeLines(a.Path(FamiliesFile), tax.Families); err != nil {
		return err
	}
	for _, c := range tax.Clades {
		if err := writeLines(a.Path(CladesDir, c.Label+".txt"), c.Members); err != nil {
			return err
		}
	}
	return nil
}

// ReadTaxonomy reads back the family list and the clade lists for labels,
// in the given order.
func (a *Artifacts) ReadTaxonomy(labels []string) (*phylotext.Taxonomy, error) {
	families, err := readLines(a.Path(FamiliesFile))
	if err != nil {
		return nil, err
	}

	tax := &phylotext.Taxonomy{Families: sortedSet(families)}
	for _, label := range labels {
		members, err := readLines(a.Path(CladesDir, label+".txt"))
		if err != nil {
			return nil, err
		}
		tax.Clades = append(tax.Clades, phylotext.CladeSet{Label: label, Members: sortedSet(members)})
	}
	return tax, nil
}

// WriteRegistry writes the index table, one "<index> <name>" per line.
func (a *Artifacts) WriteRegistry(reg *phylotext.Registry) error {
	lines := make([]string, reg.Len())
	for i, name := range reg.Names() {
		lines[i] = strconv.Itoa(i) + " " + name
	}
	return writeLines(a.Path(IndexFile), lines)
}

// ReadRegistry replays a stored index table. Returns EINVALID if the table
// is not a dense, sorted bijection.
func (a *Artifacts) ReadRegistry() (*phylotext.Registry, error) {
	lines, err := readLines(a.Path(IndexFile))
	if err != nil {
		return nil, err
	}

	names := make([]string, len(lines))
	for i, line := range lines {
		idx, name, ok := strings.Cut(line, " ")
		if !ok || name == "" {
			return nil, phylotext.Errorf(phylotext.EINVALID, "%s line %d: want \"<index> <name>\"", IndexFile, i+1)
		}
		n, err := strconv.Atoi(idx)
		if err != nil || n != i {
			return nil, phylotext.Errorf(phylotext.EINVALID, "%s line %d: index %q out of sequence", IndexFile, i+1, idx)
		}
		names[i] = name
	}

	reg := phylotext.NewRegistry(names)
	if !slices.Equal(reg.Names(), names) {
		return nil, phylotext.Errorf(phylotext.EINVALID, "%s is not sorted or has duplicates", IndexFile)
	}
	return reg, nil
}

// WriteCorpus writes the tagged corpus, one "<index>\t<family>\t<tokens>"
// per document.
func (a *Artifacts) WriteCorpus(docs []phylotext.TaggedDocument) error {
	lines := make([]string, len(docs))
	for i, d := range docs {
		lines[i] = fmt.Sprintf("%d\t%s\t%s", d.Index, d.Family, strings.Join(d.Words, " "))
	}
	return writeLines(a.Path(CorpusFile), lines)
}

// WriteAssignments writes one "<index>\t<family>\t<cluster>" record per
// assigned family, in index order.
func (a *Artifacts) WriteAssignments(method string, reg *phylotext.Registry, assignment *phylotext.ClusterAssignment) error {
	indices := slices.Sorted(maps.Keys(assignment.Clusters))
	lines := make([]string, 0, len(indices))
	for _, i := range indices {
		name, ok := reg.Name(i)
		if !ok {
			return phylotext.Errorf(phylotext.ECONTRACT, "index %d outside [0, %d)", i, reg.Len())
		}
		lines = append(lines, fmt.Sprintf("%d\t%s\t%d", i, name, assignment.Clusters[i]))
	}
	return writeLines(a.Path(AssignDir, method+".txt"), lines)
}

// WriteReport writes the rendered report of one clustering configuration to
// reports/<method>.txt.
func (a *Artifacts) WriteReport(method, report string) error {
	return writeFileAtomic(a.Path(ReportsDir, method+".txt"), []byte(report))
}

// WriteFailures writes the fetch failure log: a "[<ordinal>] : <family>"
// line followed by the cause and a blank line per failure.
func (a *Artifacts) WriteFailures(failures []phylotext.FetchFailure) error {
	var b strings.Builder
	for _, f := range failures {
		fmt.Fprintf(&b, "[%d] : %s\n%s\n\n", f.Ordinal, f.Family, phylotext.ErrorMessage(f.Err))
	}
	return writeFileAtomic(a.Path(FailuresFile), []byte(b.String()))
}

func sortedSet(names []string) []string {
	slices.Sort(names)
	return slices.Compact(names)
}
