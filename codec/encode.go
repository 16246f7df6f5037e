package codec

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/numtide/fstree/tree"
)

// encoder is a tree.Visitor which builds a Node for every element it visits.
type encoder struct {
	paths map[uuid.UUID]string
	root  *Node
	stack []*Node
}

// Encode converts the tree below root into a Node. Every link must point at an element of the same tree and
// sibling names must be unique, links included.
func Encode(root tree.Element) (*Node, error) {
	e := &encoder{paths: make(map[uuid.UUID]string)}
	seen := make(map[string]bool)

	err := tree.Walk(root, func(el tree.Element, path string, _ int) (bool, error) {
		if seen[path] {
			return false, fmt.Errorf("%w: %s", ErrDuplicateName, path)
		}

		seen[path] = true

		// only files and folders can be link targets
		if _, ok := el.(tree.Linkable); ok {
			e.paths[el.ID()] = path
		}

		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index tree: %w", err)
	}

	if err = root.Accept(e, 0); err != nil {
		return nil, err
	}

	return e.root, nil
}

func (e *encoder) node(el tree.Element, kind Kind) *Node {
	node := &Node{
		ID:   el.ID().String(),
		Kind: kind,
		Name: el.Name(),
		Size: el.Size(),
		Date: el.Date(),
	}

	if len(e.stack) == 0 {
		e.root = node
	} else {
		parent := e.stack[len(e.stack)-1]
		parent.Children = append(parent.Children, node)
	}

	return node
}

func (e *encoder) VisitFile(file *tree.File, _ int) error {
	e.node(file, KindFile)

	return nil
}

func (e *encoder) VisitLink(link *tree.Link, _ int) error {
	target, ok := e.paths[link.Target().ID]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrTargetNotFound, link.Name(), link.Target().Name)
	}

	e.node(link, KindLink).Target = target

	return nil
}

func (e *encoder) VisitFolder(folder *tree.Folder, depth int) error {
	e.stack = append(e.stack, e.node(folder, KindFolder))
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
	}()

	return folder.AcceptChildren(e, depth)
}
