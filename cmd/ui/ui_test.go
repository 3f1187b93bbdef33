package ui

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flytaly/mdsite/pkg/linkcheck"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("short", 10))
	assert.Equal(t, "abcdef", tail("abcdef", 6))
	assert.Equal(t, "...ef", tail("abcdef", 5))
	assert.Equal(t, "...ёж", tail("абвгдёж", 5))
}

func TestFormatReport(t *testing.T) {
	assert.Equal(t, "", FormatReport(nil, 5, 80))

	r := site.NewReport()
	r.Pages = []string{"a.html", "b.html"}
	r.Full = true
	r.Failed["content/bad.md"] = errors.New("unclosed delimiter")
	r.Skipped = []string{"content/large.md"}
	r.Removed = []string{"old.html"}
	r.Broken = []linkcheck.Broken{
		{Page: "a.html", Ref: linkcheck.Ref{Tag: "a", Dest: "x.html"}, Path: "x.html"},
		{Page: "a.html", Ref: linkcheck.Ref{Tag: "a", Dest: "y.html"}, Path: "y.html"},
		{Page: "b.html", Ref: linkcheck.Ref{Tag: "img", Dest: "z.png"}, Path: "z.png"},
	}

	out := FormatReport(r, 2, 120)
	assert.Contains(t, out, "Built 2 pages")
	assert.Contains(t, out, "old.html")
	assert.Contains(t, out, "content/bad.md")
	assert.Contains(t, out, "unclosed delimiter")
	assert.Contains(t, out, "content/large.md")
	assert.Contains(t, out, "x.html")
	assert.Contains(t, out, "y.html")
	assert.NotContains(t, out, "z.png")
	assert.Contains(t, out, "and 1 more...")

	r.Full = false
	assert.Contains(t, FormatReport(r, 2, 120), "Updated 2 pages")
}

func TestFormatLogs(t *testing.T) {
	records := []log.Record{}
	for _, text := range []string{"one", "two", "three"} {
		records = append(records, log.Record{Level: log.InfoLevel, Time: time.Now(), Text: text})
	}
	out := formatLogs(records, 2)
	assert.NotContains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")
}

func testModel(t *testing.T) model {
	fsys := fstest.MapFS{
		"template.html":    {Data: []byte("<title>{{ Title }}</title>{{ Content }}")},
		"content/index.md": {Data: []byte("# Home\n\ntext")},
	}
	s := site.New(fsys, "", site.Options{Content: "content", Template: "template.html", Public: t.TempDir()}, nil)
	m := newModel(s, nil, "root", time.Second)
	t.Cleanup(m.cancel)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelUpdate(t *testing.T) {
	t.Run("build result", func(t *testing.T) {
		m := testModel(t)
		require.True(t, m.building)
		msg := rebuild(m)()

		next, _ := m.Update(msg)
		m = next.(model)
		assert.False(t, m.building)
		require.NotNil(t, m.last)
		assert.Equal(t, []string{"index.html"}, m.last.Pages)
		assert.Contains(t, m.View(), "Built 1 pages")
	})

	t.Run("rebuild is ignored while building", func(t *testing.T) {
		m := testModel(t)
		_, cmd := m.Update(runes("r"))
		assert.Nil(t, cmd)

		m.building = false
		next, cmd := m.Update(runes("r"))
		assert.True(t, next.(model).building)
		assert.NotNil(t, cmd)
	})

	t.Run("toggle log", func(t *testing.T) {
		m := testModel(t)
		next, _ := m.Update(log.Record{Level: log.WarningLevel, Time: time.Now(), Text: "something happened"})
		m = next.(model)
		assert.NotContains(t, m.View(), "something happened")

		next, _ = m.Update(runes("l"))
		m = next.(model)
		assert.True(t, m.showLog)
		assert.Contains(t, m.View(), "something happened")
	})

	t.Run("watcher report", func(t *testing.T) {
		m := testModel(t)
		m.building = false
		next, cmd := m.Update(reportMsg{err: errors.New("template is broken")})
		m = next.(model)
		assert.NotNil(t, cmd)
		assert.Contains(t, m.View(), "template is broken")
	})

	t.Run("quit", func(t *testing.T) {
		m := testModel(t)
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.NotNil(t, cmd)
		assert.True(t, next.(model).quitting)
		assert.Equal(t, "", next.(model).View())
		assert.Error(t, m.ctx.Err())
	})
}
