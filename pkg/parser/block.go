package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flytaly/mdsite/pkg/htmlnode"
)

const codeFence = "```"

var headingRegexp = regexp.MustCompile(`^(#{1,6}) `)   // ### heading
var orderedItemRegexp = regexp.MustCompile(`^\d+\.\s`) // 1. item

// SplitBlocks splits the document on blank lines.
// Blocks are trimmed, empty blocks are dropped.
func SplitBlocks(doc string) []string {
	blocks := []string{}
	var current []string

	flush := func() {
		if block := strings.TrimSpace(strings.Join(current, "\n")); block != "" {
			blocks = append(blocks, block)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(doc, "\n") {
		if IsBlank(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// IsBlank returns true if the line contains only spaces and tabs
func IsBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' && line[i] != '\r' {
			return false
		}
	}
	return true
}

// Classify returns the type of the block and heading level.
// The first matching rule wins.
func Classify(block string) (BlockType, int) {
	if m := headingRegexp.FindStringSubmatch(block); m != nil {
		return Heading, len(m[1])
	}

	if len(block) >= 2*len(codeFence) && strings.HasPrefix(block, codeFence) && strings.HasSuffix(block, codeFence) {
		return CodeBlock, 0
	}

	lines := strings.Split(block, "\n")

	if everyLine(lines, isQuoteLine) {
		return Quote, 0
	}
	if everyLine(lines, isUnorderedItem) {
		return UnorderedList, 0
	}
	// numbering isn't checked, "1. a\n1. b" is still an ordered list
	if everyLine(lines, isOrderedItem) {
		return OrderedList, 0
	}

	return Paragraph, 0
}

func everyLine(lines []string, fn func(string) bool) bool {
	for _, line := range lines {
		if !fn(line) {
			return false
		}
	}
	return true
}

func isQuoteLine(line string) bool {
	return len(line) > 0 && line[0] == '>'
}

func isUnorderedItem(line string) bool {
	return len(line) >= 2 && line[:2] == "- "
}

func isOrderedItem(line string) bool {
	return len(line) >= 3 && IsDigit(line[0]) && line[1] == '.' && line[2] == ' '
}

// ParseBlocks splits the document into classified blocks
func ParseBlocks(doc string) []Block {
	texts := SplitBlocks(NormalizeNewlines(doc))
	blocks := make([]Block, 0, len(texts))
	for _, text := range texts {
		t, level := Classify(text)
		blocks = append(blocks, Block{Text: text, Type: t, Level: level})
	}
	return blocks
}

// BlockToNode builds the HTML element of the block
func BlockToNode(b Block) (htmlnode.Node, error) {
	switch b.Type {
	case Heading:
		return headingNode(b)
	case CodeBlock:
		return codeNode(b), nil
	case Quote:
		return quoteNode(b)
	case UnorderedList:
		return listNode(b, func(line string) string { return line[2:] })
	case OrderedList:
		return listNode(b, func(line string) string { return orderedItemRegexp.ReplaceAllString(line, "") })
	case Paragraph:
		return paragraphNode(b)
	}
	return nil, fmt.Errorf("unknown block type %d", int(b.Type))
}

func headingNode(b Block) (htmlnode.Node, error) {
	level := b.Level
	if level == 0 {
		_, level = Classify(b.Text)
	}
	if level == 0 {
		return nil, fmt.Errorf("not a heading: %q", b.Text)
	}
	children, err := InlineNodes(b.Text[level+1:])
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(fmt.Sprintf("h%d", level), children), nil
}

// code inside fences is never parsed
func codeNode(b Block) htmlnode.Node {
	text := strings.TrimPrefix(b.Text, codeFence+"\n")
	if len(text) == len(b.Text) {
		text = strings.TrimPrefix(text, codeFence)
	}
	text = strings.TrimSuffix(text, codeFence)
	return htmlnode.NewParent("pre", []htmlnode.Node{htmlnode.NewLeaf("code", text)})
}

func quoteNode(b Block) (htmlnode.Node, error) {
	text := strings.TrimSpace(strings.ReplaceAll(b.Text, ">", ""))
	children, err := InlineNodes(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("blockquote", children), nil
}

// ordered lists are rendered with "ul" as well
func listNode(b Block, stripPrefix func(string) string) (htmlnode.Node, error) {
	lines := strings.Split(b.Text, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		children, err := InlineNodes(stripPrefix(line))
		if err != nil {
			return nil, err
		}
		items = append(items, htmlnode.NewParent("li", children))
	}
	return htmlnode.NewParent("ul", items), nil
}

func paragraphNode(b Block) (htmlnode.Node, error) {
	children, err := InlineNodes(strings.ReplaceAll(b.Text, "\n", " "))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("p", children), nil
}
