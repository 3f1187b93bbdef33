package parser

import (
	"regexp"
	"strings"
)

// Parsing of inline elements

const (
	mdImage = `!\[([^\]]*)\]\(([^\)]*)\)` // ![alt text](url)
	mdLink  = `\[([^\]]*)\]\(([^\)]*)\)`  // [text](url)
)

var imageRegexp = regexp.MustCompile(mdImage)
var linkRegexp = regexp.MustCompile(mdLink)

// delimiters are applied in this order: "**" has to be consumed before "_" and "`"
var delimiters = []struct {
	delim string
	kind  SpanKind
}{
	{"**", Bold},
	{"_", Italic},
	{"`", Code},
}

// Match is a link or an image found in the text
type Match struct {
	Text    string // link text or image alt
	URL     string
	Literal string // the whole markdown construct
}

// Inline splits text into a sequence of typed spans.
func Inline(text string) ([]TextSpan, error) {
	spans := []TextSpan{NewSpan(text, Plain)}
	var err error
	for _, d := range delimiters {
		spans, err = SplitDelimiter(spans, d.delim, d.kind)
		if err != nil {
			return nil, err
		}
	}
	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans, nil
}

// SplitDelimiter splits every plain span by the delimiter. Text between
// pairs of delimiters gets the given kind. Spans of other kinds are
// returned unchanged.
func SplitDelimiter(spans []TextSpan, delim string, kind SpanKind) ([]TextSpan, error) {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			result = append(result, span)
			continue
		}
		n := strings.Count(span.Text, delim)
		if n == 0 {
			result = append(result, span)
			continue
		}
		if n%2 != 0 {
			return nil, &MalformedError{Delimiter: delim, Text: span.Text}
		}
		for i, part := range strings.Split(span.Text, delim) {
			if part == "" {
				continue
			}
			if i%2 == 0 {
				result = append(result, NewSpan(part, Plain))
			} else {
				result = append(result, NewSpan(part, kind))
			}
		}
	}
	return result, nil
}

// ExtractImages returns all images in the text, left to right
func ExtractImages(text string) []Match {
	var matches []Match
	for _, m := range imageRegexp.FindAllStringSubmatch(text, -1) {
		matches = append(matches, Match{Text: m[1], URL: m[2], Literal: m[0]})
	}
	return matches
}

// ExtractLinks returns all links that are not images, left to right
func ExtractLinks(text string) []Match {
	var matches []Match
	for _, loc := range linkRegexp.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '!' {
			continue
		}
		matches = append(matches, Match{
			Text:    text[loc[2]:loc[3]],
			URL:     text[loc[4]:loc[5]],
			Literal: text[loc[0]:loc[1]],
		})
	}
	return matches
}

// SplitImages replaces images in plain spans with Image spans
func SplitImages(spans []TextSpan) []TextSpan {
	return splitMatches(spans, ExtractImages, NewImageSpan)
}

// SplitLinks replaces links in plain spans with Link spans
func SplitLinks(spans []TextSpan) []TextSpan {
	return splitMatches(spans, ExtractLinks, NewLinkSpan)
}

func splitMatches(spans []TextSpan, extract func(string) []Match, newSpan func(text, url string) TextSpan) []TextSpan {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			result = append(result, span)
			continue
		}
		matches := extract(span.Text)
		if len(matches) == 0 {
			result = append(result, span)
			continue
		}
		rest := span.Text
		for _, m := range matches {
			before, after, found := strings.Cut(rest, m.Literal)
			if !found {
				continue
			}
			if before != "" {
				result = append(result, NewSpan(before, Plain))
			}
			result = append(result, newSpan(m.Text, m.URL))
			rest = after
		}
		if rest != "" {
			result = append(result, NewSpan(rest, Plain))
		}
	}
	return result
}
