package codec

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/numtide/fstree/tree"
)

type decoder struct {
	log *log.Logger

	// linkables holds every file and folder by path, created before any link so targets can be forward references.
	linkables map[string]tree.Linkable
	links     map[string]bool
	count     int
}

// Decode builds the tree described by root.
func Decode(root *Node) (tree.Element, error) {
	d := &decoder{
		log:       log.WithPrefix("codec"),
		linkables: make(map[string]tree.Linkable),
		links:     make(map[string]bool),
	}

	if err := d.index(root, tree.RootPath, true); err != nil {
		return nil, err
	}

	el, err := d.assemble(root, tree.RootPath, true)
	if err != nil {
		return nil, err
	}

	d.log.Debugf("decoded %d elements", d.count)

	return el, nil
}

func (d *decoder) options(node *Node, path string) ([]tree.Option, error) {
	var opts []tree.Option

	if node.ID != "" {
		id, err := uuid.Parse(node.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidID, path, err)
		}

		opts = append(opts, tree.WithID(id))
	}

	if !node.Date.IsZero() {
		opts = append(opts, tree.WithDate(node.Date))
	}

	return opts, nil
}

// index validates the tree and creates every file and folder.
func (d *decoder) index(node *Node, path string, root bool) error {
	if !root && (node.Name == "" || strings.Contains(node.Name, "/")) {
		return fmt.Errorf("%w: %q in %s", ErrInvalidName, node.Name, path)
	}

	opts, err := d.options(node, path)
	if err != nil {
		return err
	}

	switch node.kind(root) {
	case KindFile:
		if node.Size < 0 {
			return fmt.Errorf("%w: %s has size %d", ErrInvalidSize, path, node.Size)
		}

		d.linkables[path] = tree.NewFile(node.Name, node.Size, opts...)

		return nil

	case KindLink:
		if root {
			return fmt.Errorf("%w: the root cannot be a link", ErrUnknownKind)
		}

		d.links[path] = true

		return nil

	case KindFolder:
		if node.Size < 0 {
			return fmt.Errorf("%w: %s has size %d", ErrInvalidSize, path, node.Size)
		}

		if node.Size > 0 {
			// children added during assembly bring the folder back to its recorded size
			opts = append(opts, tree.WithSize(node.Size-childrenSize(node)))
		}

		d.linkables[path] = tree.NewFolder(node.Name, opts...)

		seen := make(map[string]bool, len(node.Children))

		for _, child := range node.Children {
			if seen[child.Name] {
				return fmt.Errorf("%w: %s", ErrDuplicateName, tree.Join(path, child.Name))
			}

			seen[child.Name] = true

			if err := d.index(child, tree.Join(path, child.Name), false); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: %q at %s", ErrUnknownKind, node.Kind, path)
	}
}

// assemble adds children to folders in order, creating links along the way.
func (d *decoder) assemble(node *Node, path string, root bool) (tree.Element, error) {
	d.count++

	if node.kind(root) == KindLink {
		return d.link(node, path)
	}

	el := d.linkables[path]

	folder, ok := el.(*tree.Folder)
	if !ok {
		return el, nil
	}

	for _, child := range node.Children {
		childEl, err := d.assemble(child, tree.Join(path, child.Name), false)
		if err != nil {
			return nil, err
		}

		folder.Add(childEl)
	}

	return folder, nil
}

func (d *decoder) link(node *Node, path string) (tree.Element, error) {
	if node.Target == "" {
		return nil, fmt.Errorf("%w: %s has no target", ErrTargetNotFound, path)
	}

	target := tree.RootPath + strings.Join(tree.Split(node.Target), "/")

	linkable, ok := d.linkables[target]
	if !ok {
		if d.links[target] {
			return nil, fmt.Errorf("%w: %s -> %s", ErrNotLinkable, path, node.Target)
		}

		return nil, fmt.Errorf("%w: %s -> %s", ErrTargetNotFound, path, node.Target)
	}

	opts, err := d.options(node, path)
	if err != nil {
		return nil, err
	}

	return tree.NewLink(node.Name, linkable, opts...), nil
}

// recordedSize is the size node will have once decoded.
func recordedSize(node *Node) int64 {
	switch node.kind(false) {
	case KindFile:
		return node.Size
	case KindFolder:
		if node.Size > 0 {
			return node.Size
		}

		return tree.DefaultSize + childrenSize(node)
	default:
		return tree.DefaultSize
	}
}

func childrenSize(node *Node) int64 {
	var size int64
	for _, child := range node.Children {
		size += recordedSize(child)
	}

	return size
}
