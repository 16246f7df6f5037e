package tree_test

import (
	"testing"

	"github.com/numtide/fstree/tree"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	as := require.New(t)

	var paths []string

	var depths []int

	err := tree.Walk(tree.Demo(), func(_ tree.Element, path string, depth int) (bool, error) {
		paths = append(paths, path)
		depths = append(depths, depth)

		return true, nil
	})
	as.NoError(err)

	as.Equal([]string{
		"/",
		"/fichier1.txt",
		"/tmp",
		"/tmp/fichier2.txt",
		"/tmp/lien_dir1",
		"/tmp/lien_file2",
	}, paths)
	as.Equal([]int{0, 1, 1, 2, 2, 2}, depths)
}

func TestWalkStop(t *testing.T) {
	as := require.New(t)

	count := 0

	err := tree.Walk(tree.Demo(), func(el tree.Element, _ string, _ int) (bool, error) {
		count++

		return el.Name() != "tmp", nil
	})
	as.NoError(err)
	as.Equal(3, count)
}

func TestResolve(t *testing.T) {
	as := require.New(t)

	root := tree.Demo()

	el, err := tree.Resolve(root, "/")
	as.NoError(err)
	as.Equal(root, el)

	el, err = tree.Resolve(root, "/tmp/fichier2.txt")
	as.NoError(err)
	as.Equal("fichier2.txt", el.Name())

	_, err = tree.Resolve(root, "/tmp/missing")
	as.ErrorIs(err, tree.ErrNotFound)

	// cannot descend into a file
	_, err = tree.Resolve(root, "/fichier1.txt/x")
	as.ErrorIs(err, tree.ErrNotFound)

	// links resolve to themselves, never to their target
	el, err = tree.Resolve(root, "/tmp/lien_dir1")
	as.NoError(err)
	as.IsType(&tree.Link{}, el)
}

func TestLookup(t *testing.T) {
	as := require.New(t)

	root := tree.Demo()

	link, err := tree.Resolve(root, "/tmp/lien_file2")
	as.NoError(err)

	target, path, err := tree.Lookup(root, link.(*tree.Link).Target().ID)
	as.NoError(err)
	as.Equal("fichier1.txt", target.Name())
	as.Equal("/fichier1.txt", path)

	_, _, err = tree.Lookup(root, tree.NewFile("x", 1).ID())
	as.ErrorIs(err, tree.ErrNotFound)
}

func TestJoinSplit(t *testing.T) {
	as := require.New(t)

	as.Equal("/a", tree.Join("/", "a"))
	as.Equal("/a/b", tree.Join("/a", "b"))
	as.Nil(tree.Split("/"))
	as.Equal([]string{"a", "b"}, tree.Split("/a/b"))
}
