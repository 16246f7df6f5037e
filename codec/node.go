// Package codec converts trees to and from Node, a plain representation shared by tree files (TOML) and
// snapshots (msgpack).
package codec

import (
	"errors"
	"time"
)

type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
	KindLink   Kind = "link"
)

var (
	ErrUnknownKind    = errors.New("unknown element kind")
	ErrInvalidName    = errors.New("invalid element name")
	ErrInvalidSize    = errors.New("invalid element size")
	ErrInvalidID      = errors.New("invalid element id")
	ErrDuplicateName  = errors.New("duplicate element name")
	ErrTargetNotFound = errors.New("link target not found")
	ErrNotLinkable    = errors.New("link target is not a file or folder")
)

// Node is a serialisable element.
//
// Links refer to their target by root-relative path, e.g. /tmp/file.txt, and may refer to elements which appear
// later in the tree.
type Node struct {
	// ID is generated when empty.
	ID string `toml:"id,omitempty" msgpack:"id,omitempty"`
	// Kind defaults to folder for the root. Otherwise it is inferred as link if Target is set, folder if there
	// are children, and file in any other case.
	Kind Kind `toml:"kind,omitempty" msgpack:"kind,omitempty"`
	Name string `toml:"name" msgpack:"name"`
	// Size is required for files. A folder's recorded size is restored when set, otherwise it is accumulated
	// from its children. Links always have size 1.
	Size int64 `toml:"size,omitempty" msgpack:"size,omitempty"`
	// Date is the creation time, defaulting to the time of decoding.
	Date     time.Time `toml:"date,omitempty" msgpack:"date,omitempty"`
	Target   string    `toml:"target,omitempty" msgpack:"target,omitempty"`
	Children []*Node   `toml:"children,omitempty" msgpack:"children,omitempty"`
}

func (n *Node) kind(root bool) Kind {
	switch {
	case n.Kind != "":
		return n.Kind
	case root:
		return KindFolder
	case n.Target != "":
		return KindLink
	case len(n.Children) > 0:
		return KindFolder
	default:
		return KindFile
	}
}
