// Package tree models an in-memory filesystem-like tree of folders, files and links.
//
// Operations over the tree are written as a Visitor: each element dispatches to the visit
// method matching its own variant, so visitors never need to inspect element types.
package tree

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSize is the size of any element which does not carry an explicit one.
const DefaultSize int64 = 1

// Element is the common behaviour of every node in a tree.
type Element interface {
	ID() uuid.UUID
	Name() string
	Size() int64
	Date() time.Time

	// Accept dispatches to the visit method of v matching this element's variant.
	Accept(v Visitor, depth int) error
}

// Linkable is an Element which can be the target of a Link.
// Only *File and *Folder satisfy it.
type Linkable interface {
	Element
	linkable()
}

type base struct {
	id   uuid.UUID
	name string
	size int64
	date time.Time
}

func (b *base) ID() uuid.UUID {
	return b.id
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Size() int64 {
	return b.size
}

func (b *base) Date() time.Time {
	return b.date
}

// Option customises an element at construction.
type Option func(b *base)

// WithID overrides the randomly generated identifier, e.g. when restoring a snapshot.
func WithID(id uuid.UUID) Option {
	return func(b *base) {
		b.id = id
	}
}

// WithDate overrides the creation timestamp.
func WithDate(date time.Time) Option {
	return func(b *base) {
		b.date = date
	}
}

// WithSize overrides the size a folder starts from before any child is added, e.g. to restore a recorded size.
// Files take their size from NewFile and links always have DefaultSize.
func WithSize(size int64) Option {
	return func(b *base) {
		b.size = size
	}
}

func newBase(name string, opts []Option) base {
	b := base{
		id:   uuid.New(),
		name: name,
		size: DefaultSize,
		date: time.Now(),
	}

	for _, opt := range opts {
		opt(&b)
	}

	return b
}

// File is a leaf element with an explicit size.
type File struct {
	base
}

// NewFile creates a file with the given size.
func NewFile(name string, size int64, opts ...Option) *File {
	f := &File{base: newBase(name, opts)}
	f.size = size

	return f
}

func (f *File) Accept(v Visitor, depth int) error {
	return v.VisitFile(f, depth)
}

func (*File) linkable() {}

// Folder owns an ordered list of children.
type Folder struct {
	base
	children []Element
}

// NewFolder creates an empty folder of size DefaultSize.
func NewFolder(name string, opts ...Option) *Folder {
	return &Folder{base: newBase(name, opts)}
}

// Add appends el to the folder's children and adds its current size to the folder's size.
// The folder's size is not recomputed if el changes afterwards.
func (f *Folder) Add(el Element) {
	f.children = append(f.children, el)
	f.size += el.Size()
}

// Children returns the folder's children in insertion order.
func (f *Folder) Children() []Element {
	children := make([]Element, len(f.children))
	copy(children, f.children)

	return children
}

// Len returns the number of children.
func (f *Folder) Len() int {
	return len(f.children)
}

func (f *Folder) Accept(v Visitor, depth int) error {
	return v.VisitFolder(f, depth)
}

// AcceptChildren has each child accept v at depth+1, in insertion order.
// It stops at the first error.
func (f *Folder) AcceptChildren(v Visitor, depth int) error {
	for _, child := range f.children {
		if err := child.Accept(v, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (*Folder) linkable() {}

// Ref identifies the target of a Link without holding on to it.
type Ref struct {
	ID   uuid.UUID
	Name string
}

// Link points at a File or Folder elsewhere in the tree.
// It only remembers the target's identity: it never owns the target and is never followed during traversal.
type Link struct {
	base
	target Ref
}

// NewLink creates a link to target.
func NewLink(name string, target Linkable, opts ...Option) *Link {
	l := &Link{
		base: newBase(name, opts),
		target: Ref{
			ID:   target.ID(),
			Name: target.Name(),
		},
	}
	l.size = DefaultSize

	return l
}

// Target returns a reference to the linked element. Use Lookup to resolve it.
func (l *Link) Target() Ref {
	return l.target
}

func (l *Link) Accept(v Visitor, depth int) error {
	return v.VisitLink(l, depth)
}
