// Package markdown parses the constrained Markdown subset used for
// assessments into a flat sequence of blocks with styled inline spans.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindListItem
)

// Span is a contiguous inline fragment sharing one style.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Block is one paragraph-level construct. Level is set for headings
// (clamped to 1-3); Ordered and Number for list items, where Number is the
// 1-based position within the item's own list block.
type Block struct {
	Kind    BlockKind
	Level   int
	Ordered bool
	Number  int
	Spans   []Span
}

// Parse converts Markdown source into blocks. Unsupported constructs
// (tables, blockquotes, code fences, thematic breaks, raw HTML, images) are
// skipped rather than rendered. Inline style flags are scoped to a single
// block: every block starts with bold and italic off.
func Parse(source []byte) []Block {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []Block
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		blocks = appendBlock(blocks, node, source)
	}
	return blocks
}

func appendBlock(blocks []Block, node ast.Node, source []byte) []Block {
	switch n := node.(type) {
	case *ast.Heading:
		level := n.Level
		if level > 3 {
			level = 3
		}
		blocks = append(blocks, Block{Kind: KindHeading, Level: level, Spans: inlineSpans(n, source)})
	case *ast.Paragraph:
		blocks = append(blocks, Block{Kind: KindParagraph, Spans: inlineSpans(n, source)})
	case *ast.List:
		blocks = appendListItems(blocks, n, source)
	}
	return blocks
}

// appendListItems flattens a list into one block per item. The counter is
// owned by the list node, so every ordered list block restarts at 1 and
// nested lists never share state with their parents.
func appendListItems(blocks []Block, list *ast.List, source []byte) []Block {
	number := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		number++

		var spans []Span
		var nested []*ast.List
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				nested = append(nested, c)
			case *ast.TextBlock, *ast.Paragraph:
				spans = append(spans, inlineSpans(child, source)...)
			}
		}

		blocks = append(blocks, Block{
			Kind:    KindListItem,
			Ordered: list.IsOrdered(),
			Number:  number,
			Spans:   coalesce(spans),
		})

		for _, sub := range nested {
			blocks = appendListItems(blocks, sub, source)
		}
	}
	return blocks
}

func inlineSpans(parent ast.Node, source []byte) []Span {
	var spans []Span
	collectInline(parent, source, false, false, &spans)
	return coalesce(spans)
}

func collectInline(parent ast.Node, source []byte, bold, italic bool, spans *[]Span) {
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Text:
			// Line breaks inside a block become a single space, so
			// multi-line inline content collapses into one run sequence.
			text := string(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				text += " "
			}
			if text != "" {
				*spans = append(*spans, Span{Text: text, Bold: bold, Italic: italic})
			}
		case *ast.String:
			if len(n.Value) > 0 {
				*spans = append(*spans, Span{Text: string(n.Value), Bold: bold, Italic: italic})
			}
		case *ast.Emphasis:
			if n.Level >= 2 {
				collectInline(n, source, true, italic, spans)
			} else {
				collectInline(n, source, bold, true, spans)
			}
		case *ast.CodeSpan:
			var sb strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					sb.Write(t.Segment.Value(source))
				}
			}
			if sb.Len() > 0 {
				*spans = append(*spans, Span{Text: sb.String(), Bold: bold, Italic: italic, Code: true})
			}
		case *ast.Link:
			// Keep the visible text, discard the destination.
			collectInline(n, source, bold, italic, spans)
		case *ast.AutoLink:
			*spans = append(*spans, Span{Text: string(n.URL(source)), Bold: bold, Italic: italic})
		case *ast.Image:
			// skipped
		default:
			if node.Type() == ast.TypeInline {
				collectInline(node, source, bold, italic, spans)
			}
		}
	}
}

// coalesce merges adjacent spans with identical styling so that discarded
// line breaks do not split runs.
func coalesce(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}

	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Bold == span.Bold && last.Italic == span.Italic && last.Code == span.Code {
				last.Text += span.Text
				continue
			}
		}
		out = append(out, span)
	}
	return out
}
