package visitor_test

import (
	"errors"
	"testing"

	"github.com/numtide/fstree/matcher"
	"github.com/numtide/fstree/tree"
	"github.com/numtide/fstree/visitor"
	"github.com/stretchr/testify/require"
)

func globFinder(t *testing.T, pattern string, field matcher.Field) *visitor.Finder {
	t.Helper()

	match, err := matcher.NewGlobInclusion([]string{pattern}, field)
	require.NoError(t, err)

	return visitor.NewFinder(match)
}

func TestFinder(t *testing.T) {
	as := require.New(t)

	for _, tc := range []struct {
		pattern  string
		field    matcher.Field
		expected []string
	}{
		{"*.txt", matcher.Name, []string{"/fichier1.txt", "/tmp/fichier2.txt"}},
		{"lien_*", matcher.Name, []string{"/tmp/lien_dir1", "/tmp/lien_file2"}},
		{"tmp", matcher.Name, []string{"/tmp"}},
		{"nothing", matcher.Name, nil},
		{"/tmp/*", matcher.Path, []string{"/tmp/fichier2.txt", "/tmp/lien_dir1", "/tmp/lien_file2"}},
		// the root path matches as * also matches nothing
		{"/*", matcher.Path, []string{"/", "/fichier1.txt", "/tmp"}},
		{"/**", matcher.Path, []string{
			"/", "/fichier1.txt", "/tmp", "/tmp/fichier2.txt", "/tmp/lien_dir1", "/tmp/lien_file2",
		}},
	} {
		matches, err := globFinder(t, tc.pattern, tc.field).Find(tree.Demo())
		as.NoError(err)
		as.Equal(tc.expected, matches, "pattern %s", tc.pattern)
	}
}

func TestFinderDoesNotFollowLinks(t *testing.T) {
	as := require.New(t)

	root := tree.NewFolder("/")
	dir := tree.NewFolder("dir")
	dir.Add(tree.NewFile("target.txt", 1))
	root.Add(dir)
	root.Add(tree.NewLink("shortcut", dir))

	matches, err := globFinder(t, "target.txt", matcher.Name).Find(root)
	as.NoError(err)
	as.Equal([]string{"/dir/target.txt"}, matches)
}

func TestFinderCombined(t *testing.T) {
	as := require.New(t)

	include, err := matcher.NewGlobInclusion([]string{"*"}, matcher.Name)
	as.NoError(err)

	exclude, err := matcher.NewGlobExclusion([]string{"/tmp/**"}, matcher.Path)
	as.NoError(err)

	kinds, err := matcher.NewKindFilter([]string{"file", "link"})
	as.NoError(err)

	matches, err := visitor.NewFinder(matcher.Combine(
		[]matcher.MatchFn{include},
		[]matcher.MatchFn{exclude, kinds},
	)).Find(tree.Demo())
	as.NoError(err)
	as.Equal([]string{"/fichier1.txt"}, matches)
}

func TestFinderError(t *testing.T) {
	as := require.New(t)

	boom := errors.New("boom")

	_, err := visitor.NewFinder(func(_ *matcher.Entry) (matcher.Result, error) {
		return matcher.Error, boom
	}).Find(tree.Demo())
	as.ErrorIs(err, boom)
}
