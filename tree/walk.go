package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RootPath is the path of the element a traversal starts from.
const RootPath = "/"

var (
	ErrNotFound     = errors.New("element not found")
	ErrUnknownValue = errors.New("unknown element variant")
)

// WalkFunc is called for every element reached by Walk, with the element's root-relative path and depth.
// Returning false stops the walk.
type WalkFunc func(el Element, path string, depth int) (bool, error)

// Walk visits root and its descendants in pre-order, children in insertion order.
// Links are reported but never followed.
func Walk(root Element, fn WalkFunc) error {
	_, err := walk(root, RootPath, 0, fn)

	return err
}

func walk(el Element, path string, depth int, fn WalkFunc) (bool, error) {
	switch v := el.(type) {
	case *File, *Link:
		return fn(v, path, depth)
	case *Folder:
		if ok, err := fn(v, path, depth); !ok || err != nil {
			return ok, err
		}

		for _, child := range v.children {
			ok, err := walk(child, Join(path, child.Name()), depth+1, fn)
			if !ok || err != nil {
				return ok, err
			}
		}

		return true, nil
	default:
		return false, fmt.Errorf("%w: %T", ErrUnknownValue, el)
	}
}

// Join returns the path of a child named name below parent.
func Join(parent string, name string) string {
	if parent == RootPath {
		return RootPath + name
	}

	return parent + "/" + name
}

// Split breaks a root-relative path into its segments. The root path has none.
func Split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}

	return strings.Split(path, "/")
}

// Lookup finds the element with the given id, returning its path as well.
func Lookup(root Element, id uuid.UUID) (found Element, path string, err error) {
	err = Walk(root, func(el Element, p string, _ int) (bool, error) {
		if el.ID() == id {
			found, path = el, p

			return false, nil
		}

		return true, nil
	})
	if err != nil {
		return nil, "", err
	}

	if found == nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotFound, id)
	}

	return found, path, nil
}

// Resolve finds the element at a root-relative path such as /tmp/file.txt.
// When sibling names collide the first child wins.
func Resolve(root Element, path string) (Element, error) {
	current := root

	for _, name := range Split(path) {
		folder, ok := current.(*Folder)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		current = nil

		for _, child := range folder.children {
			if child.Name() == name {
				current = child

				break
			}
		}

		if current == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	}

	return current, nil
}
