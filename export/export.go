// Package export writes trees into a billy.Filesystem, typically an in-memory one, and checks the result.
package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"github.com/numtide/fstree/tree"
)

var ErrTargetOutsideTree = errors.New("link target is not part of the tree")

// Problem describes an element which did not materialise as expected.
type Problem struct {
	Path   string
	Reason string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Reason
}

// materializer creates a directory, a zero-filled file or a symlink for every element it visits.
type materializer struct {
	fs    billy.Filesystem
	paths map[uuid.UUID]string
	stack []string
}

func paths(root tree.Element) (map[uuid.UUID]string, error) {
	result := make(map[uuid.UUID]string)

	err := tree.Walk(root, func(el tree.Element, path string, _ int) (bool, error) {
		result[el.ID()] = path

		return true, nil
	})

	return result, err
}

// Materialize recreates the tree below root in fs, the root mapping to fs's root directory.
// Files are filled with as many zero bytes as their size and links become absolute symlinks.
func Materialize(fs billy.Filesystem, root tree.Element) error {
	p, err := paths(root)
	if err != nil {
		return fmt.Errorf("failed to index tree: %w", err)
	}

	m := &materializer{fs: fs, paths: p}
	if err = root.Accept(m, 0); err != nil {
		return err
	}

	log.WithPrefix("export").Debugf("materialized %d elements", len(p))

	return nil
}

func (m *materializer) path(name string) string {
	if len(m.stack) == 0 {
		return tree.RootPath
	}

	return tree.Join(m.stack[len(m.stack)-1], name)
}

func (m *materializer) VisitFile(file *tree.File, _ int) error {
	path := m.path(file.Name())

	if err := util.WriteFile(m.fs, path, make([]byte, file.Size()), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

func (m *materializer) VisitLink(link *tree.Link, _ int) error {
	path := m.path(link.Name())

	target, ok := m.paths[link.Target().ID]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrTargetOutsideTree, path, link.Target().Name)
	}

	if err := m.fs.Symlink(target, path); err != nil {
		return fmt.Errorf("failed to create symlink %s: %w", path, err)
	}

	return nil
}

func (m *materializer) VisitFolder(folder *tree.Folder, depth int) error {
	path := m.path(folder.Name())

	if err := m.fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	m.stack = append(m.stack, path)
	defer func() {
		m.stack = m.stack[:len(m.stack)-1]
	}()

	return folder.AcceptChildren(m, depth)
}

// Verify checks that every element of root exists in fs with the expected type and size, and that every link
// resolves to its target.
func Verify(fs billy.Filesystem, root tree.Element) ([]Problem, error) {
	p, err := paths(root)
	if err != nil {
		return nil, fmt.Errorf("failed to index tree: %w", err)
	}

	var problems []Problem

	report := func(path string, format string, args ...any) {
		problems = append(problems, Problem{Path: path, Reason: fmt.Sprintf(format, args...)})
	}

	err = tree.Walk(root, func(el tree.Element, path string, _ int) (bool, error) {
		info, err := fs.Lstat(path)
		if err != nil {
			report(path, "missing: %v", err)

			return true, nil
		}

		switch v := el.(type) {
		case *tree.Folder:
			if !info.IsDir() {
				report(path, "expected a directory, found %v", info.Mode())
			}

		case *tree.File:
			if !info.Mode().IsRegular() {
				report(path, "expected a regular file, found %v", info.Mode())
			} else if info.Size() != v.Size() {
				report(path, "expected size %d, found %d", v.Size(), info.Size())
			}

		case *tree.Link:
			verifyLink(fs, v, path, p, info, report)
		}

		return true, nil
	})

	return problems, err
}

func verifyLink(
	fs billy.Filesystem,
	link *tree.Link,
	path string,
	paths map[uuid.UUID]string,
	info os.FileInfo,
	report func(string, string, ...any),
) {
	if info.Mode()&os.ModeSymlink == 0 {
		report(path, "expected a symlink, found %v", info.Mode())

		return
	}

	expected, ok := paths[link.Target().ID]
	if !ok {
		report(path, "target %s is not part of the tree", link.Target().Name)

		return
	}

	if target, err := fs.Readlink(path); err != nil {
		report(path, "unreadable symlink: %v", err)
	} else if target != expected {
		report(path, "expected target %s, found %s", expected, target)
	} else if _, err = fs.Stat(path); err != nil {
		report(path, "dangling symlink: %v", err)
	}
}
