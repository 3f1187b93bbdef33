package parser

// SpanKind is a type of inline markdown text
type SpanKind int

const (
	Plain SpanKind = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (k SpanKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	}
	return "?"
}

// TextSpan is a fragment of inline markdown text.
// Target is what goes into href or src, it's set only for links and images.
type TextSpan struct {
	Text   string
	Kind   SpanKind
	Target string
}

func NewSpan(text string, kind SpanKind) TextSpan {
	return TextSpan{Text: text, Kind: kind}
}

func NewLinkSpan(text, url string) TextSpan {
	return TextSpan{Text: text, Kind: Link, Target: url}
}

func NewImageSpan(alt, url string) TextSpan {
	return TextSpan{Text: alt, Kind: Image, Target: url}
}

// BlockType is a type of block-level markdown
type BlockType int

const (
	Paragraph BlockType = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

func (t BlockType) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	}
	return "?"
}

// Block is a blank-line delimited fragment of a document
type Block struct {
	Text  string
	Type  BlockType
	Level int // heading level, 0 for other blocks
}
