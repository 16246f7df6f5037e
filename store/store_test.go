package store_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/numtide/fstree/store"
	"github.com/numtide/fstree/tree"
	"github.com/numtide/fstree/visitor"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestSaveLoad(t *testing.T) {
	as := require.New(t)

	s := open(t)
	root := tree.Demo()

	snapshot, err := s.Save("demo", root)
	as.NoError(err)
	as.Equal("demo", snapshot.Name)
	as.False(snapshot.Created.IsZero())

	loaded, err := s.Load("demo")
	as.NoError(err)

	// identity, dates and sizes survive
	as.Equal(root.ID(), loaded.ID())
	as.True(root.Date().Equal(loaded.Date()))
	as.Equal(root.Size(), loaded.Size())

	var expected, actual bytes.Buffer
	as.NoError(visitor.NewPrinter(&expected).Print(root))
	as.NoError(visitor.NewPrinter(&actual).Print(loaded))
	as.Equal(expected.String(), actual.String())

	link, err := tree.Resolve(loaded, "/tmp/lien_file2")
	as.NoError(err)

	original, err := tree.Resolve(root, "/fichier1.txt")
	as.NoError(err)
	as.Equal(original.ID(), link.(*tree.Link).Target().ID)
}

func TestSaveLoadRecordedSize(t *testing.T) {
	as := require.New(t)

	s := open(t)

	root := tree.NewFolder("/")
	tmp := tree.NewFolder("tmp")
	root.Add(tmp)
	tmp.Add(tree.NewFile("late", 8))

	_, err := s.Save("grown", root)
	as.NoError(err)

	loaded, err := s.Load("grown")
	as.NoError(err)
	as.Equal(int64(2), loaded.Size())

	loadedTmp, err := tree.Resolve(loaded, "/tmp")
	as.NoError(err)
	as.Equal(int64(9), loadedTmp.Size())
}

func TestOverwrite(t *testing.T) {
	as := require.New(t)

	s := open(t)

	_, err := s.Save("a", tree.Demo())
	as.NoError(err)

	other := tree.NewFolder("/")
	other.Add(tree.NewFile("only", 9))

	_, err = s.Save("a", other)
	as.NoError(err)

	loaded, err := s.Load("a")
	as.NoError(err)
	as.Equal(other.ID(), loaded.ID())
	as.Equal(int64(10), loaded.Size())
}

func TestListDelete(t *testing.T) {
	as := require.New(t)

	s := open(t)

	names, err := s.List()
	as.NoError(err)
	as.Empty(names)

	for _, name := range []string{"b", "c", "a"} {
		_, err = s.Save(name, tree.Demo())
		as.NoError(err)
	}

	names, err = s.List()
	as.NoError(err)
	as.Equal([]string{"a", "b", "c"}, names)

	snapshots, err := s.Snapshots()
	as.NoError(err)
	as.Len(snapshots, 3)
	as.Equal("a", snapshots[0].Name)

	as.NoError(s.Delete("b"))
	as.ErrorIs(s.Delete("b"), store.ErrSnapshotNotFound)

	names, err = s.List()
	as.NoError(err)
	as.Equal([]string{"a", "c"}, names)

	_, err = s.Load("b")
	as.ErrorIs(err, store.ErrSnapshotNotFound)
}

func TestReopen(t *testing.T) {
	as := require.New(t)

	path := filepath.Join(t.TempDir(), "snapshots.db")

	s, err := store.Open(path)
	as.NoError(err)

	_, err = s.Save("demo", tree.Demo())
	as.NoError(err)
	as.NoError(s.Close())

	s, err = store.Open(path)
	as.NoError(err)

	defer s.Close()

	names, err := s.List()
	as.NoError(err)
	as.Equal([]string{"demo"}, names)
}

func TestDefaultPath(t *testing.T) {
	as := require.New(t)

	dataHome := t.TempDir()

	t.Setenv("XDG_DATA_HOME", dataHome)
	xdg.Reload()

	path, err := store.Path()
	as.NoError(err)
	as.Equal(filepath.Join(dataHome, "fstree", "snapshots.db"), path)
}
