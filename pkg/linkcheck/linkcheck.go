/*
Package linkcheck finds links and images in generated pages that point to missing files.
*/
package linkcheck

import (
	"io/fs"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ref is a link or an image found in a page
type Ref struct {
	Tag  string // "a" or "img"
	Dest string // href or src
}

// Broken is a reference to a file that doesn't exist
type Broken struct {
	Page string
	Ref  Ref
	Path string // resolved path inside the checked file system
}

func findRefs(nodes []*html.Node) []Ref {
	result := []Ref{}
	// depth-first, in document order
	stack := make([]*html.Node, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch node.DataAtom {
		case atom.Img:
			if src := attr(node, "src"); src != "" {
				result = append(result, Ref{Tag: "img", Dest: src})
			}
		case atom.A:
			if href := attr(node, "href"); href != "" {
				result = append(result, Ref{Tag: "a", Dest: href})
			}
		}
		for child := node.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, child)
		}
	}
	return result
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Refs returns links and images of the HTML document
func Refs(document string) ([]Ref, error) {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, err
	}
	return findRefs([]*html.Node{doc}), nil
}

// Resolve returns the path of the referenced file relative to the root of the site.
// It returns false for external links, anchors and absolute URLs.
func Resolve(pagePath, dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	p := u.Path
	if strings.HasPrefix(p, "/") {
		p = strings.TrimPrefix(path.Clean(p), "/")
	} else {
		p = path.Join(path.Dir(pagePath), p)
	}
	if p == "" || p == "." || strings.HasPrefix(p, "../") || p == ".." {
		return "", false
	}
	return p, true
}

// Check parses the page and returns references to the files missing in fsys.
// Links to directories are valid if the directory has an index.html.
func Check(fsys fs.FS, pagePath string) ([]Broken, error) {
	data, err := fs.ReadFile(fsys, pagePath)
	if err != nil {
		return nil, err
	}
	refs, err := Refs(string(data))
	if err != nil {
		return nil, err
	}

	broken := []Broken{}
	for _, ref := range refs {
		p, ok := Resolve(pagePath, ref.Dest)
		if !ok {
			continue
		}
		if exists(fsys, p) {
			continue
		}
		broken = append(broken, Broken{Page: pagePath, Ref: ref, Path: p})
	}
	return broken, nil
}

func exists(fsys fs.FS, p string) bool {
	fi, err := fs.Stat(fsys, p)
	if err != nil {
		return false
	}
	if !fi.IsDir() {
		return true
	}
	_, err = fs.Stat(fsys, path.Join(p, "index.html"))
	return err == nil
}
