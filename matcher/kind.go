package matcher

import (
	"errors"
	"fmt"

	"github.com/numtide/fstree/tree"
)

var ErrUnknownKind = errors.New("unknown kind")

// KindOf names the variant of el: file, folder or link.
func KindOf(el tree.Element) string {
	switch el.(type) {
	case *tree.File:
		return "file"
	case *tree.Folder:
		return "folder"
	case *tree.Link:
		return "link"
	default:
		return ""
	}
}

// NewKindFilter keeps only elements whose variant is one of kinds, reporting every other element as Unwanted.
// It never reports Wanted, so it belongs with the excludes of Combine. An empty list rejects nothing.
func NewKindFilter(kinds []string) (MatchFn, error) {
	allowed := make(map[string]bool, len(kinds))

	for _, kind := range kinds {
		switch kind {
		case "file", "folder", "link":
			allowed[kind] = true
		default:
			return nil, fmt.Errorf("%w: %q, expected one of <file|folder|link>", ErrUnknownKind, kind)
		}
	}

	return func(entry *Entry) (Result, error) {
		if len(allowed) == 0 || allowed[KindOf(entry.Element)] {
			return Indifferent, nil
		}

		return Unwanted, nil
	}, nil
}
