/*
Package page renders a markdown document into a complete HTML page using a template.
*/
package page

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/flytaly/mdsite/pkg/parser"
)

const (
	TitleMarker   = "{{ Title }}"
	ContentMarker = "{{ Content }}"
)

var ErrMissingMarker = errors.New("template marker not found")

// Template is an HTML page with title and content markers.
type Template struct {
	source string
}

// ParseTemplate checks that the source contains both markers
func ParseTemplate(source string) (*Template, error) {
	for _, marker := range []string{TitleMarker, ContentMarker} {
		if !strings.Contains(source, marker) {
			return nil, fmt.Errorf("%w: %s", ErrMissingMarker, marker)
		}
	}
	return &Template{source: source}, nil
}

// LoadTemplate reads and parses a template file
func LoadTemplate(fsys fs.FS, name string) (*Template, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	tmpl, err := ParseTemplate(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tmpl, nil
}

// Execute replaces the first occurrence of each marker
func (t *Template) Execute(title, content string) string {
	out := strings.Replace(t.source, TitleMarker, title, 1)
	return strings.Replace(out, ContentMarker, content, 1)
}

func (t *Template) String() string {
	return t.source
}

// Generate converts the markdown document into a page
func Generate(markdown string, tmpl *Template) (string, error) {
	title, err := parser.ExtractTitle(markdown)
	if err != nil {
		return "", err
	}
	content, err := parser.ToHTML(markdown)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(title, content), nil
}

// OutputName replaces markdown extension with .html
func OutputName(name string) string {
	ext := path.Ext(name)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return strings.TrimSuffix(name, ext) + ".html"
	}
	return name
}

// IsMarkdown reports whether the file name has a markdown extension
func IsMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
