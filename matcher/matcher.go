// Package matcher decides whether tree elements are wanted, combining inclusion and exclusion rules.
package matcher

import (
	"github.com/numtide/fstree/tree"
)

type Result int

const (
	// Element explicitly selected.
	Wanted Result = iota
	// Element explicitly rejected.
	Unwanted
	// Element neither selected nor rejected.
	Indifferent
	// Something went wrong.
	Error
)

// Entry is an element together with its root-relative path.
type Entry struct {
	Element tree.Element
	Path    string
}

type MatchFn = func(entry *Entry) (Result, error)

func invert(match MatchFn) MatchFn {
	return func(entry *Entry) (Result, error) {
		result, err := match(entry)

		switch result {
		case Wanted:
			result = Unwanted
		case Unwanted:
			result = Wanted
		case Indifferent:
		case Error:
		}

		return result, err
	}
}

// Combine combines multiple matchers into a single matcher.
// Exclusions are applied first, so an element is rejected if it matches any of the excludes, even if it matches
// an include. An element matching nothing is Indifferent.
func Combine(includes []MatchFn, excludes []MatchFn) MatchFn {
	matchers := make([]MatchFn, 0, len(excludes)+len(includes))
	matchers = append(matchers, excludes...)
	matchers = append(matchers, includes...)

	return func(entry *Entry) (Result, error) {
		var (
			err error
			// Default to "don't care."
			result = Indifferent
		)

		for _, matchFn := range matchers {
			result, err = matchFn(entry)
			if err != nil {
				return Error, err
			}

			switch result {
			case Wanted, Unwanted:
				return result, nil

			case Indifferent:
			case Error:
			default:
			}
		}

		return result, nil
	}
}
