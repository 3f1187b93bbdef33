/*
Package htmlnode implements a minimal tree of HTML elements that can render itself to markup.

Nodes are built permissively and validated only when rendered.
*/
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructuralViolation is returned when a node can't be rendered because
// it lacks a tag, children or value.
var ErrStructuralViolation = errors.New("invalid node structure")

// ImageTag is the only tag allowed to be rendered without a value.
const ImageTag = "img"

// Node is either a *Leaf or a *Parent.
type Node interface {
	Render() (string, error)
	node()
}

// Leaf is a type of node that cannot have children
type Leaf struct {
	Tag   string // empty tag means raw text
	Value string
	Attrs Attributes
}

// Parent is a node that wraps one or more children
type Parent struct {
	Tag      string
	Children []Node
	Attrs    Attributes
}

func (*Leaf) node()   {}
func (*Parent) node() {}

// NewLeaf creates a leaf element
func NewLeaf(tag, value string, attrs ...Attribute) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: attrs}
}

// NewText creates a leaf without a tag
func NewText(value string) *Leaf {
	return &Leaf{Value: value}
}

// NewParent creates a parent element
func NewParent(tag string, children []Node, attrs ...Attribute) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

func (l *Leaf) Render() (string, error) {
	if l.Tag == "" {
		return l.Value, nil
	}
	if l.Value == "" && l.Tag != ImageTag {
		return "", fmt.Errorf("%w: <%s> leaf has no value", ErrStructuralViolation, l.Tag)
	}
	return openTag(l.Tag, l.Attrs) + l.Value + closeTag(l.Tag), nil
}

func (p *Parent) Render() (string, error) {
	if p.Tag == "" {
		return "", fmt.Errorf("%w: parent has no tag", ErrStructuralViolation)
	}
	if len(p.Children) == 0 {
		return "", fmt.Errorf("%w: <%s> has no children", ErrStructuralViolation, p.Tag)
	}

	var b strings.Builder
	b.WriteString(openTag(p.Tag, p.Attrs))
	for _, child := range p.Children {
		if child == nil {
			return "", fmt.Errorf("%w: <%s> has a nil child", ErrStructuralViolation, p.Tag)
		}
		s, err := child.Render()
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(closeTag(p.Tag))
	return b.String(), nil
}

// Render renders any node
func Render(n Node) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: nil node", ErrStructuralViolation)
	}
	return n.Render()
}

func openTag(tag string, attrs Attributes) string {
	if len(attrs) == 0 {
		return "<" + tag + ">"
	}
	return "<" + tag + " " + attrs.Render() + ">"
}

func closeTag(tag string) string {
	return "</" + tag + ">"
}
