/*
Package parser implements a parser for a small subset of markdown that builds a tree of HTML nodes.

Supported blocks are headings, fenced code, quotes, flat lists and paragraphs.
Inline markup is limited to **bold**, _italic_, `code`, links and images.
*/
package parser

import (
	"strings"

	"github.com/flytaly/mdsite/pkg/htmlnode"
)

// RootTag is the tag of the element that wraps the whole document
const RootTag = "div"

// Convert parses the markdown document into a tree of HTML nodes.
// Blocks are rendered in document order.
func Convert(markdown string) (*htmlnode.Parent, error) {
	blocks := ParseBlocks(markdown)
	children := make([]htmlnode.Node, 0, len(blocks))
	for _, b := range blocks {
		node, err := BlockToNode(b)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return htmlnode.NewParent(RootTag, children), nil
}

// ToHTML converts the markdown document into an HTML fragment
func ToHTML(markdown string) (string, error) {
	root, err := Convert(markdown)
	if err != nil {
		return "", err
	}
	return root.Render()
}

// ExtractTitle returns the text of the first level-1 heading
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(NormalizeNewlines(markdown), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", ErrMissingTitle
}

// IsDigit returns true if c is an ascii digit
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// NormalizeNewlines replaces CR (mac) and CRLF (windows) with LF
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
