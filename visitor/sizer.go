package visitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/numtide/fstree/tree"
)

// Entry is the recursive size of a folder.
type Entry struct {
	Path string
	Size int64
}

// Sizer computes the size of every folder from its current contents, unlike Folder.Size which is only
// accumulated as elements are added. Links count as a single unit and are not followed.
//
// Folders are reported in post-order, like du.
type Sizer struct {
	w       io.Writer
	names   []string
	sums    []int64
	entries []Entry
	total   int64
}

// NewSizer creates a Sizer which writes a line per folder to w. w may be nil.
func NewSizer(w io.Writer) *Sizer {
	return &Sizer{w: w}
}

// Size walks root and returns its recursive size.
func (s *Sizer) Size(root tree.Element) (int64, error) {
	s.names = s.names[:0]
	s.sums = s.sums[:0]
	s.entries = nil
	s.total = 0

	if err := root.Accept(s, 0); err != nil {
		return 0, err
	}

	return s.total, nil
}

// Entries returns the folders seen by the last call to Size.
func (s *Sizer) Entries() []Entry {
	return s.entries
}

// Total returns the result of the last call to Size.
func (s *Sizer) Total() int64 {
	return s.total
}

func (s *Sizer) add(size int64) {
	if len(s.sums) == 0 {
		s.total = size

		return
	}

	s.sums[len(s.sums)-1] += size
}

func (s *Sizer) path() string {
	if len(s.names) <= 1 {
		return tree.RootPath
	}

	return tree.RootPath + strings.Join(s.names[1:], "/")
}

func (s *Sizer) VisitFile(file *tree.File, _ int) error {
	s.add(file.Size())

	return nil
}

func (s *Sizer) VisitLink(link *tree.Link, _ int) error {
	s.add(link.Size())

	return nil
}

func (s *Sizer) VisitFolder(folder *tree.Folder, depth int) error {
	s.names = append(s.names, folder.Name())
	s.sums = append(s.sums, tree.DefaultSize)

	if err := folder.AcceptChildren(s, depth); err != nil {
		return err
	}

	entry := Entry{Path: s.path(), Size: s.sums[len(s.sums)-1]}
	s.entries = append(s.entries, entry)

	s.sums = s.sums[:len(s.sums)-1]
	s.names = s.names[:len(s.names)-1]
	s.add(entry.Size)

	if s.w != nil {
		if _, err := fmt.Fprintf(s.w, "%d\t%s\n", entry.Size, entry.Path); err != nil {
			return fmt.Errorf("failed to write size of %s: %w", entry.Path, err)
		}
	}

	return nil
}
