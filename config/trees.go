package config

import (
	"context"

	"github.com/numtide/fstree/codec"
	"github.com/numtide/fstree/tree"
)

// Trees returns the trees described by TreeFiles, in order, or the demo tree if there are none.
func (c *Config) Trees(ctx context.Context) ([]tree.Element, error) {
	if len(c.TreeFiles) == 0 {
		return []tree.Element{tree.Demo()}, nil
	}

	return codec.LoadAll(ctx, c.TreeFiles) //nolint:wrapcheck
}
