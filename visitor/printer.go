package visitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/numtide/fstree/tree"
)

// DefaultIndent is repeated once per level of depth.
const DefaultIndent = "   "

type PrinterOption func(p *Printer)

// WithIndent sets the string repeated once per level of depth.
func WithIndent(indent string) PrinterOption {
	return func(p *Printer) {
		p.indent = indent
	}
}

// WithLegacyIndent makes the printer ignore the visited depth and instead use a level which is incremented on
// every folder and never restored. Siblings following a folder are therefore indented further than they should
// be. This reproduces the output of older listings.
func WithLegacyIndent(legacy bool) PrinterOption {
	return func(p *Printer) {
		p.legacy = legacy
	}
}

// Printer writes an indented listing of a tree, one line per element in pre-order.
type Printer struct {
	w      io.Writer
	log    *log.Logger
	indent string
	legacy bool

	// level is only used with legacy indentation.
	level int
}

func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		w:      w,
		log:    log.WithPrefix("printer"),
		indent: DefaultIndent,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Print lists root and its descendants.
func (p *Printer) Print(root tree.Element) error {
	p.level = 0
	p.log.Debugf("printing tree rooted at %s", root.Name())

	return root.Accept(p, 0)
}

func (p *Printer) prefix(depth int) string {
	if p.legacy {
		depth = p.level
	}

	return strings.Repeat(p.indent, depth)
}

func (p *Printer) VisitFile(file *tree.File, depth int) error {
	_, err := fmt.Fprintf(p.w, "%s |_ %s (%d)\n", p.prefix(depth), file.Name(), file.Size())
	if err != nil {
		return fmt.Errorf("failed to print file %s: %w", file.Name(), err)
	}

	return nil
}

func (p *Printer) VisitLink(link *tree.Link, depth int) error {
	_, err := fmt.Fprintf(p.w, "%s |_ %s -> %s\n", p.prefix(depth), link.Name(), link.Target().Name)
	if err != nil {
		return fmt.Errorf("failed to print link %s: %w", link.Name(), err)
	}

	return nil
}

func (p *Printer) VisitFolder(folder *tree.Folder, depth int) error {
	_, err := fmt.Fprintf(p.w, "%s |_ DIR %s\n", p.prefix(depth), folder.Name())
	if err != nil {
		return fmt.Errorf("failed to print folder %s: %w", folder.Name(), err)
	}

	p.level++

	return folder.AcceptChildren(p, depth)
}
