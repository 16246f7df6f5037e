package matcher

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Field selects what a glob is matched against.
type Field int

const (
	Name Field = iota
	Path
)

type globMatcher struct {
	globs []glob.Glob
	field Field
}

func newGlobMatcher(patterns []string, field Field) (*globMatcher, error) {
	globs := make([]glob.Glob, len(patterns))

	for i, pattern := range patterns {
		var (
			g   glob.Glob
			err error
		)

		// paths use / as a separator so that * stays within a folder
		if field == Path {
			g, err = glob.Compile(pattern, '/')
		} else {
			g, err = glob.Compile(pattern)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern '%v': %w", pattern, err)
		}

		globs[i] = g
	}

	return &globMatcher{globs: globs, field: field}, nil
}

func (gm *globMatcher) match(entry *Entry) (Result, error) {
	subject := entry.Element.Name()
	if gm.field == Path {
		subject = entry.Path
	}

	for _, g := range gm.globs {
		if g.Match(subject) {
			return Wanted, nil
		}
	}

	return Indifferent, nil
}

// NewGlobInclusion wants elements matching any of patterns.
func NewGlobInclusion(patterns []string, field Field) (MatchFn, error) {
	gm, err := newGlobMatcher(patterns, field)
	if err != nil {
		return nil, err
	}

	return gm.match, nil
}

// NewGlobExclusion rejects elements matching any of patterns.
func NewGlobExclusion(patterns []string, field Field) (MatchFn, error) {
	gm, err := newGlobMatcher(patterns, field)
	if err != nil {
		return nil, err
	}

	return invert(gm.match), nil
}
