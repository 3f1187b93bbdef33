package linkcheck

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefs(t *testing.T) {
	doc := `<html><body><div>
<p>text <a href="/blog/">blog</a> <img src="images/cat.png" alt="cat"></img></p>
<ul><li><a href="https://boot.dev">external</a></li><li><a>no href</a></li></ul>
</div></body></html>`

	refs, err := Refs(doc)
	require.NoError(t, err)
	want := []Ref{
		{Tag: "a", Dest: "/blog/"},
		{Tag: "img", Dest: "images/cat.png"},
		{Tag: "a", Dest: "https://boot.dev"},
	}
	assert.Equal(t, want, refs)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		page, dest string
		want       string
		ok         bool
	}{
		{"index.html", "images/cat.png", "images/cat.png", true},
		{"blog/post.html", "../images/cat.png", "images/cat.png", true},
		{"blog/post.html", "/images/cat.png", "images/cat.png", true},
		{"blog/post.html", "other.html#section", "blog/other.html", true},
		{"blog/post.html", "img%20one.png", "blog/img one.png", true},
		{"index.html", "#top", "", false},
		{"index.html", "https://boot.dev", "", false},
		{"index.html", "mailto:me@example.com", "", false},
		{"index.html", "//cdn.example.com/x.js", "", false},
		{"index.html", "../outside.html", "", false},
		{"index.html", "/", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.page+" "+tt.dest, func(t *testing.T) {
			got, ok := Resolve(tt.page, tt.dest)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html": {Data: []byte(`<div><a href="blog">blog</a><a href="missing.html">x</a>` +
			`<img src="images/cat.png" alt=""></img><img src="images/dog.png" alt=""></img></div>`)},
		"blog/index.html": {Data: []byte(`<div><a href="../index.html">home</a><a href="/nope/">nope</a></div>`)},
		"images/cat.png":  {},
		"nope/readme.txt": {},
	}

	broken, err := Check(fsys, "index.html")
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "index.html", Ref: Ref{Tag: "a", Dest: "missing.html"}, Path: "missing.html"},
		{Page: "index.html", Ref: Ref{Tag: "img", Dest: "images/dog.png"}, Path: "images/dog.png"},
	}, broken)

	broken, err = Check(fsys, "blog/index.html")
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "blog/index.html", Ref: Ref{Tag: "a", Dest: "/nope/"}, Path: "nope"},
	}, broken)

	_, err = Check(fsys, "absent.html")
	assert.Error(t, err)
}
