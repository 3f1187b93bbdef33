package parser

import (
	"fmt"

	"github.com/flytaly/mdsite/pkg/htmlnode"
)

// SpanToNode converts a text span into a leaf HTML node
func SpanToNode(span TextSpan) (htmlnode.Node, error) {
	switch span.Kind {
	case Plain:
		return htmlnode.NewText(span.Text), nil
	case Bold:
		return htmlnode.NewLeaf("b", span.Text), nil
	case Italic:
		return htmlnode.NewLeaf("i", span.Text), nil
	case Code:
		return htmlnode.NewLeaf("code", span.Text), nil
	case Link:
		return htmlnode.NewLeaf("a", span.Text, htmlnode.Attrs("href", span.Target)...), nil
	case Image:
		return htmlnode.NewLeaf(htmlnode.ImageTag, "", htmlnode.Attrs("src", span.Target, "alt", span.Text)...), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnrecognizedSpanKind, int(span.Kind))
}

// InlineNodes parses inline markdown and converts every span into a node
func InlineNodes(text string) ([]htmlnode.Node, error) {
	spans, err := Inline(text)
	if err != nil {
		return nil, err
	}
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		node, err := SpanToNode(span)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
