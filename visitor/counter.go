package visitor

import (
	"github.com/numtide/fstree/stats"
	"github.com/numtide/fstree/tree"
)

// Counter tallies visited elements by variant.
type Counter struct {
	statz *stats.Stats
}

func NewCounter(statz *stats.Stats) *Counter {
	return &Counter{statz: statz}
}

func (c *Counter) VisitFile(_ *tree.File, _ int) error {
	c.statz.Add(stats.Files, 1)

	return nil
}

func (c *Counter) VisitLink(_ *tree.Link, _ int) error {
	c.statz.Add(stats.Links, 1)

	return nil
}

func (c *Counter) VisitFolder(folder *tree.Folder, depth int) error {
	c.statz.Add(stats.Folders, 1)

	return folder.AcceptChildren(c, depth)
}
