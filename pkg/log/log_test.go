package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLog(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLog(&out, &errOut)

	l.Info("built %d pages", 3)
	l.Warning("skipped %s", "big.md")
	l.Error("failed %s", "bad.md")

	assert.Equal(t, "built 3 pages\n", out.String())
	assert.Contains(t, errOut.String(), "skipped big.md")
	assert.Contains(t, errOut.String(), "failed bad.md")
	assert.NoError(t, l.Close())
}

func TestFileLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdsite.log")
	l, err := New(path)
	require.NoError(t, err)

	l.Error("oops %d", 1)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR ")
	assert.Contains(t, string(data), "oops 1")
}

func TestChanLog(t *testing.T) {
	l := NewChanLog(2, nil)
	l.Info("one")
	l.Error("two %s", "!")
	l.Warning("dropped") // buffer is full

	r := <-l.Records()
	assert.Equal(t, InfoLevel, r.Level)
	assert.Equal(t, "one", r.Text)

	r = <-l.Records()
	assert.Equal(t, ErrorLevel, r.Level)
	assert.Equal(t, "two !", r.Text)
	assert.Contains(t, r.String(), "two !")

	require.NoError(t, l.Close())
	_, ok := <-l.Records()
	assert.False(t, ok)

	l.Info("after close") // must not panic
}
