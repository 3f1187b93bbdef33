package fswatcher

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flytaly/mdsite/testutils"
)

var j = path.Join

// return fs with empty files and folders from a slice with filenames
func createFS(files []string) fstest.MapFS {
	ff := fstest.MapFS{}
	for _, v := range files {
		if filepath.Ext(v) == "" { // is dir
			ff[v] = &fstest.MapFile{Mode: fs.ModeDir}
			continue
		}
		ff[v] = &fstest.MapFile{}
	}
	return ff
}

// scan runs a single scan and returns sent events by their names
func scan(t *testing.T, p *Poller) map[string]Event {
	t.Helper()
	events := map[string]Event{}
	done := make(chan struct{})
	go func() {
		p.Scan()
		close(done)
	}()
	for {
		select {
		case e := <-p.Events():
			events[e.Name] = e
		case err := <-p.Errors():
			t.Errorf("watcher error event: %s", err)
		case <-done:
			return events
		case <-time.After(time.Second):
			t.Fatal("scan wasn't completed in time")
		}
	}
}

func TestAdd(t *testing.T) {
	t.Run("add files", func(t *testing.T) {
		root := "path"
		fileList := []string{
			j(root, "content"),
			j(root, "content", "index.md"),
			j(root, "content", "blog"),
			j(root, "content", "blog", "post.md"),
			j(root, "content", "ignored_dir"),
		}
		fsys := createFS(fileList)
		fsys[j(root, "content", "ignored_dir", "file1.md")] = &fstest.MapFile{}

		p := NewFsPoller(fsys, ".")
		p.AddShouldSkipHook(func(path string, fi fs.FileInfo) bool {
			return fi.IsDir() && fi.Name() == "ignored_dir"
		})
		_, err := p.Add(j(root, "content"))
		require.NoError(t, err)
		_, err = p.Add(j(root, "content", "blog"))
		require.NoError(t, err)

		assert.Len(t, p.watches, 2)
		testutils.CompareMapKeys(t, p.WatchedList(), fileList[:4])
	})

	t.Run("absolute path", func(t *testing.T) {
		fsys := createFS([]string{j("content", "index.md")})
		p := NewFsPoller(fsys, "/site")
		list, err := p.Add("/site/content")
		require.NoError(t, err)
		testutils.CompareMapKeys(t, list, []string{"content", j("content", "index.md")})
	})

	t.Run("error if closed", func(t *testing.T) {
		p := NewFsPoller(fstest.MapFS{}, ".")
		require.NoError(t, p.Close())
		_, err := p.Add("file")
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("file does not exist", func(t *testing.T) {
		p := NewFsPoller(fstest.MapFS{}, ".")
		_, err := p.Add("some_folder")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestRemove(t *testing.T) {
	fsys := createFS([]string{"path1.md", "path2.md"})
	p := NewFsPoller(fsys, ".")
	_, _ = p.Add("path1.md")
	_, _ = p.Add("path2.md")
	require.NoError(t, p.Remove("path1.md"))
	assert.Contains(t, p.files, "path2.md")
	assert.NotContains(t, p.files, "path1.md")
	assert.NotContains(t, p.watches, "path1.md")
}

func TestEvents(t *testing.T) {
	t.Run("CREATE", func(t *testing.T) {
		fsys := createFS([]string{"file.md"})
		p := NewFsPoller(fsys, ".")
		_, err := p.Add(".")
		require.NoError(t, err)

		fsys["new1.md"] = &fstest.MapFile{Data: []byte("1")}
		fsys["dir/new2.md"] = &fstest.MapFile{Data: []byte("22")}

		got := scan(t, p)
		want := map[string]Event{
			"new1.md":     {Op: Create, Name: "new1.md"},
			"dir":         {Op: Create, Name: "dir"},
			"dir/new2.md": {Op: Create, Name: "dir/new2.md"},
		}
		assert.Equal(t, want, got)
		assert.Contains(t, p.files, "dir/new2.md")
	})

	t.Run("REMOVE", func(t *testing.T) {
		fsys := createFS([]string{"file1.md", "file2.md"})
		p := NewFsPoller(fsys, ".")
		_, _ = p.Add(".")

		delete(fsys, "file2.md")

		got := scan(t, p)
		assert.Equal(t, map[string]Event{"file2.md": {Op: Remove, Name: "file2.md"}}, got)
		assert.NotContains(t, p.files, "file2.md")
	})

	t.Run("REMOVE watched path", func(t *testing.T) {
		fsys := createFS([]string{j("temp", "file.md"), "keep.md"})
		p := NewFsPoller(fsys, ".")
		_, _ = p.Add("temp")
		_, _ = p.Add("keep.md")

		delete(fsys, j("temp", "file.md"))
		delete(fsys, "temp")

		got := scan(t, p)
		assert.Equal(t, map[string]Event{
			"temp":               {Op: Remove, Name: "temp"},
			j("temp", "file.md"): {Op: Remove, Name: j("temp", "file.md")},
		}, got)
		assert.NotContains(t, p.watches, "temp")
		assert.Contains(t, p.watches, "keep.md")
	})

	t.Run("RENAME", func(t *testing.T) {
		fsys := fstest.MapFS{
			"file1.md": {Data: []byte("first")},
			"file2.md": {Data: []byte("second file")},
		}
		p := NewFsPoller(fsys, ".")
		_, _ = p.Add(".")

		fsys["renamed.md"] = fsys["file2.md"]
		delete(fsys, "file2.md")

		got := scan(t, p)
		assert.Equal(t, map[string]Event{
			"file2.md": {Op: Rename, Name: "file2.md", NewPath: "renamed.md"},
		}, got)
		assert.NotContains(t, p.files, "file2.md")
		assert.Contains(t, p.files, "renamed.md")
	})

	t.Run("WRITE", func(t *testing.T) {
		fsys := createFS([]string{"file1.md", "file2.md"})
		p := NewFsPoller(fsys, ".")
		_, _ = p.Add(".")

		fsys["file2.md"] = &fstest.MapFile{ModTime: time.Now()}

		got := scan(t, p)
		assert.Equal(t, map[string]Event{"file2.md": {Op: Write, Name: "file2.md"}}, got)
	})

	t.Run("nothing changed", func(t *testing.T) {
		fsys := createFS([]string{"file1.md"})
		p := NewFsPoller(fsys, ".")
		_, _ = p.Add(".")
		assert.Empty(t, scan(t, p))
	})
}

func TestStartAndClose(t *testing.T) {
	fsys := createFS([]string{"file.md"})
	p := NewFsPoller(fsys, ".")
	_, _ = p.Add(".")

	errc := make(chan error, 1)
	go func() { errc <- p.Start(0) }()

	select {
	case <-p.ScanComplete():
	case <-time.After(time.Second):
		t.Fatal("scan wasn't completed in time")
	}

	require.NoError(t, p.Close())
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start didn't return after Close")
	}

	assert.ErrorIs(t, p.Start(0), ErrClosed)
}

func TestRealFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A"), 0o644))

	p := NewFsPoller(os.DirFS(dir), dir)
	_, err := p.Add(".")
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")))

	got := scan(t, p)
	assert.Equal(t, map[string]Event{"a.md": {Op: Rename, Name: "a.md", NewPath: "b.md"}}, got)
}
