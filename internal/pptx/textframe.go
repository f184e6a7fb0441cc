package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Run is a contiguous span of text sharing one style.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// Font overrides the shape's latin typeface when non-empty.
	Font string
	// Size is in hundredths of a point (OOXML convention); 0 inherits.
	Size int
}

// Paragraph is one line-level block of a text frame.
type Paragraph struct {
	Runs []Run
}

// TextFrame is the paragraph/run model of a text-capable shape.
type TextFrame struct {
	shape *Shape
}

// Paragraphs reads the shape's current paragraph/run structure.
func (tf *TextFrame) Paragraphs() ([]Paragraph, error) {
	slide, err := tf.shape.pres.parseSlide(tf.shape.slidePath)
	if err != nil {
		return nil, err
	}

	for _, sp := range slide.Shapes {
		if sp.CNvPr.Name != tf.shape.id && sp.CNvPr.Descr != tf.shape.id {
			continue
		}
		if sp.TxBody == nil {
			return nil, ErrPlaceholderNotTextCapable
		}

		paragraphs := make([]Paragraph, 0, len(sp.TxBody.Paragraphs))
		for _, para := range sp.TxBody.Paragraphs {
			var out Paragraph
			for _, run := range para.Runs {
				r := Run{Text: run.Text}
				if run.Props != nil {
					r.Bold = run.Props.Bold == "1" || run.Props.Bold == "true"
					r.Italic = run.Props.Italic == "1" || run.Props.Italic == "true"
					r.Size = run.Props.Size
					if run.Props.Latin != nil {
						r.Font = run.Props.Latin.Typeface
					}
				}
				out.Runs = append(out.Runs, r)
			}
			paragraphs = append(paragraphs, out)
		}
		return paragraphs, nil
	}

	return nil, ErrPlaceholderNotFound
}

// SetParagraphs replaces the shape's entire paragraph list. The new markup is
// spliced into the raw slide XML so that everything outside the target
// txBody, including the frame's bodyPr and list style, survives untouched.
func (tf *TextFrame) SetParagraphs(paragraphs []Paragraph) error {
	raw := tf.shape.pres.parts[tf.shape.slidePath]

	spStart, spEnd, err := locateShapeSpan(raw, tf.shape.id)
	if err != nil {
		return err
	}

	shapeXML := raw[spStart:spEnd]
	txStart := bytes.Index(shapeXML, []byte("<p:txBody"))
	if txStart < 0 {
		return ErrPlaceholderNotTextCapable
	}
	txEnd := bytes.Index(shapeXML[txStart:], []byte("</p:txBody>"))
	if txEnd < 0 {
		return fmt.Errorf("unterminated txBody in %s", tf.shape.slidePath)
	}
	txEnd += txStart + len("</p:txBody>")

	openEnd := bytes.IndexByte(shapeXML[txStart:], '>')
	if openEnd < 0 {
		return fmt.Errorf("malformed txBody in %s", tf.shape.slidePath)
	}
	inner := shapeXML[txStart+openEnd+1 : txEnd-len("</p:txBody>")]

	var body strings.Builder
	body.WriteString("<p:txBody>")
	body.WriteString(preservedChunk(inner, "a:bodyPr", "<a:bodyPr/>"))
	body.WriteString(preservedChunk(inner, "a:lstStyle", ""))
	for _, para := range paragraphs {
		writeParagraphXML(&body, para)
	}
	body.WriteString("</p:txBody>")

	var updated bytes.Buffer
	updated.Grow(len(raw) + body.Len())
	updated.Write(raw[:spStart+txStart])
	updated.WriteString(body.String())
	updated.Write(raw[spStart+txEnd:])

	tf.shape.pres.parts[tf.shape.slidePath] = updated.Bytes()
	return nil
}

// locateShapeSpan finds the byte span of the <p:sp> element whose cNvPr
// carries the identifier as name or description. The scan only inspects
// <p:cNvPr> open tags, so a literal occurrence of the identifier inside run
// text can never be matched.
func locateShapeSpan(raw []byte, id string) (int, int, error) {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(id))

	nameAttr := []byte(`name="` + escaped.String() + `"`)
	descrAttr := []byte(`descr="` + escaped.String() + `"`)

	cNvPrAt := -1
	for offset := 0; ; {
		at := bytes.Index(raw[offset:], []byte("<p:cNvPr"))
		if at < 0 {
			break
		}
		at += offset

		tagEnd := bytes.IndexByte(raw[at:], '>')
		if tagEnd < 0 {
			return 0, 0, fmt.Errorf("unterminated cNvPr element")
		}

		tag := raw[at : at+tagEnd]
		if bytes.Contains(tag, nameAttr) || bytes.Contains(tag, descrAttr) {
			cNvPrAt = at
			break
		}

		offset = at + tagEnd
	}
	if cNvPrAt < 0 {
		return 0, 0, ErrPlaceholderNotFound
	}

	// The nearest preceding <p:sp> open tag belongs to the matched shape;
	// shapes never nest inside each other.
	spStart := -1
	search := raw[:cNvPrAt]
	for {
		at := bytes.LastIndex(search, []byte("<p:sp"))
		if at < 0 {
			break
		}
		next := raw[at+len("<p:sp")]
		if next == '>' || next == ' ' || next == '\t' || next == '\r' || next == '\n' {
			spStart = at
			break
		}
		search = search[:at]
	}
	if spStart < 0 || bytes.Contains(raw[spStart:cNvPrAt], []byte("</p:sp>")) {
		// Identifier sits on a non-shape element (picture, graphic frame).
		return 0, 0, ErrPlaceholderNotTextCapable
	}

	spEnd := bytes.Index(raw[cNvPrAt:], []byte("</p:sp>"))
	if spEnd < 0 {
		return 0, 0, fmt.Errorf("unterminated shape element")
	}
	spEnd += cNvPrAt + len("</p:sp>")

	return spStart, spEnd, nil
}

// preservedChunk returns the original element markup (self-closing or paired)
// for the given tag inside a txBody, or fallback when absent.
func preservedChunk(inner []byte, tag, fallback string) string {
	start := bytes.Index(inner, []byte("<"+tag))
	if start < 0 {
		return fallback
	}

	openEnd := bytes.IndexByte(inner[start:], '>')
	if openEnd < 0 {
		return fallback
	}
	if inner[start+openEnd-1] == '/' {
		return string(inner[start : start+openEnd+1])
	}

	closeTag := "</" + tag + ">"
	closeAt := bytes.Index(inner[start:], []byte(closeTag))
	if closeAt < 0 {
		return fallback
	}
	return string(inner[start : start+closeAt+len(closeTag)])
}

func writeParagraphXML(b *strings.Builder, para Paragraph) {
	b.WriteString("<a:p>")
	for _, run := range para.Runs {
		b.WriteString("<a:r>")
		b.WriteString(`<a:rPr lang="en-US"`)
		if run.Size > 0 {
			fmt.Fprintf(b, ` sz="%d"`, run.Size)
		}
		if run.Bold {
			b.WriteString(` b="1"`)
		}
		if run.Italic {
			b.WriteString(` i="1"`)
		}
		if run.Font != "" {
			b.WriteString(`><a:latin typeface="`)
			writeEscaped(b, run.Font)
			b.WriteString(`"/></a:rPr>`)
		} else {
			b.WriteString("/>")
		}
		b.WriteString("<a:t>")
		writeEscaped(b, run.Text)
		b.WriteString("</a:t></a:r>")
	}
	b.WriteString("</a:p>")
}

func writeEscaped(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
