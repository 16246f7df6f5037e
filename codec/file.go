package codec

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/numtide/fstree/tree"
	"golang.org/x/sync/errgroup"
)

// ReadFile reads a TOML tree file. Unknown keys are rejected.
func ReadFile(path string) (*Node, error) {
	node := &Node{}

	md, err := toml.DecodeFile(path, node)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tree file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to decode tree file %s: unknown keys %v", path, undecoded)
	}

	return node, nil
}

// Load reads and decodes a TOML tree file.
func Load(path string) (tree.Element, error) {
	node, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	el, err := Decode(node)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tree file %s: %w", path, err)
	}

	return el, nil
}

// Write encodes node as TOML.
func Write(w io.Writer, node *Node) error {
	if err := toml.NewEncoder(w).Encode(node); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}

	return nil
}

// WriteFile encodes node as TOML into the file at path.
func WriteFile(path string, node *Node) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tree file %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close tree file %s: %w", path, closeErr)
		}
	}()

	return Write(f, node)
}

// LoadAll reads and decodes several tree files concurrently, returning the trees in the order of paths.
func LoadAll(ctx context.Context, paths []string) ([]tree.Element, error) {
	trees := make([]tree.Element, len(paths))

	eg, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			el, err := Load(path)
			if err != nil {
				return err
			}

			trees[i] = el

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return trees, nil
}
