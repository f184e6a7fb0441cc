// Package render projects parsed Markdown onto the paragraph/run model of a
// placeholder text frame.
package render

import (
	"fmt"

	"github.com/esgfactsheet/factsheet-ai/internal/markdown"
	"github.com/esgfactsheet/factsheet-ai/internal/pptx"
)

// Point sizes in hundredths of a point.
const (
	sizeHeading1 = 2000
	sizeHeading2 = 1600
	sizeHeading3 = 1400
	sizeBody     = 1100
	sizeCode     = 1000

	codeFont     = "Courier New"
	bulletPrefix = "• "
)

// Apply replaces the text frame's entire content with the rendered source.
// The output contains exactly one paragraph per block, in source order.
func Apply(tf *pptx.TextFrame, source string) error {
	return tf.SetParagraphs(Paragraphs(source))
}

// Paragraphs renders Markdown source into paragraph/run structures.
func Paragraphs(source string) []pptx.Paragraph {
	blocks := markdown.Parse([]byte(source))

	paragraphs := make([]pptx.Paragraph, 0, len(blocks))
	for _, block := range blocks {
		paragraphs = append(paragraphs, paragraphFor(block))
	}
	return paragraphs
}

func paragraphFor(block markdown.Block) pptx.Paragraph {
	baseSize := sizeBody
	baseBold := false

	if block.Kind == markdown.KindHeading {
		baseBold = true
		switch block.Level {
		case 1:
			baseSize = sizeHeading1
		case 2:
			baseSize = sizeHeading2
		default:
			baseSize = sizeHeading3
		}
	}

	var para pptx.Paragraph

	if block.Kind == markdown.KindListItem {
		// The prefix is its own unstyled run so inline styling never bleeds
		// into the marker.
		prefix := bulletPrefix
		if block.Ordered {
			prefix = fmt.Sprintf("%d. ", block.Number)
		}
		para.Runs = append(para.Runs, pptx.Run{Text: prefix, Size: baseSize})
	}

	for _, span := range block.Spans {
		run := pptx.Run{
			Text:   span.Text,
			Bold:   span.Bold || baseBold,
			Italic: span.Italic,
			Size:   baseSize,
		}
		if span.Code {
			run.Font = codeFont
			run.Size = sizeCode
		}
		para.Runs = append(para.Runs, run)
	}

	return para
}
