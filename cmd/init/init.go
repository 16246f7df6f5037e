package init

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileName is the name of the sample tree file written into the working directory.
const FileName = "tree.toml"

// We embed the sample toml file for use with the init flag.
//
//go:embed init.toml
var initBytes []byte

func Run(out io.Writer) error {
	if _, err := os.Stat(FileName); err == nil {
		return fmt.Errorf("%s already exists", FileName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check for %s: %w", FileName, err)
	}

	if err := os.WriteFile(FileName, initBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}

	_, _ = fmt.Fprintf(out, "Generated %s. Now it's your turn to edit it.\n", FileName)

	return nil
}
