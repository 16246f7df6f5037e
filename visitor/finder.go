package visitor

import (
	"github.com/numtide/fstree/matcher"
	"github.com/numtide/fstree/tree"
)

// Finder collects the paths of elements wanted by a matcher.
// Links are matched like any other element but never followed.
type Finder struct {
	match matcher.MatchFn

	folders []string
	matches []string
}

func NewFinder(match matcher.MatchFn) *Finder {
	return &Finder{match: match}
}

// Find returns the paths of wanted elements below and including root, in pre-order.
func (f *Finder) Find(root tree.Element) ([]string, error) {
	f.folders = f.folders[:0]
	f.matches = nil

	if err := root.Accept(f, 0); err != nil {
		return nil, err
	}

	return f.matches, nil
}

func (f *Finder) path(name string) string {
	if len(f.folders) == 0 {
		return tree.RootPath
	}

	return tree.Join(f.folders[len(f.folders)-1], name)
}

func (f *Finder) visit(el tree.Element) error {
	entry := &matcher.Entry{Element: el, Path: f.path(el.Name())}

	result, err := f.match(entry)
	if err != nil {
		return err
	}

	if result == matcher.Wanted {
		f.matches = append(f.matches, entry.Path)
	}

	return nil
}

func (f *Finder) VisitFile(file *tree.File, _ int) error {
	return f.visit(file)
}

func (f *Finder) VisitLink(link *tree.Link, _ int) error {
	return f.visit(link)
}

func (f *Finder) VisitFolder(folder *tree.Folder, depth int) error {
	if err := f.visit(folder); err != nil {
		return err
	}

	f.folders = append(f.folders, f.path(folder.Name()))
	defer func() {
		f.folders = f.folders[:len(f.folders)-1]
	}()

	return folder.AcceptChildren(f, depth)
}
