package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Presentation is an in-memory PPTX archive. Parts that are never touched are
// carried as raw bytes and written back verbatim on Save, so regeneration
// preserves the deck's visual design outside the placeholder.
type Presentation struct {
	parts      map[string][]byte
	partOrder  []string
	slidePaths []string
}

type presentationXML struct {
	SlideIDs []slideIDXML `xml:"sldIdLst>sldId"`
}

type slideIDXML struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type relationshipsXML struct {
	Rels []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

type slideXML struct {
	Shapes []shapeXML        `xml:"cSld>spTree>sp"`
	Pics   []picXML          `xml:"cSld>spTree>pic"`
	Frames []graphicFrameXML `xml:"cSld>spTree>graphicFrame"`
}

type shapeXML struct {
	CNvPr  cNvPrXML   `xml:"nvSpPr>cNvPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type picXML struct {
	CNvPr cNvPrXML `xml:"nvPicPr>cNvPr"`
}

type graphicFrameXML struct {
	CNvPr cNvPrXML  `xml:"nvGraphicFramePr>cNvPr"`
	Table *tableXML `xml:"graphic>graphicData>tbl"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

type cNvPrXML struct {
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

type txBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Props *runPropsXML `xml:"rPr"`
	Text  string       `xml:"t"`
}

type runPropsXML struct {
	Bold   string    `xml:"b,attr"`
	Italic string    `xml:"i,attr"`
	Size   int       `xml:"sz,attr"`
	Latin  *latinXML `xml:"latin"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

// Open reads a PPTX archive and resolves its slides in document order.
func Open(data []byte) (*Presentation, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read PPTX as ZIP: %w", err)
	}

	pres := &Presentation{parts: make(map[string][]byte)}

	for _, file := range zipReader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", file.Name, err)
		}
		pres.parts[file.Name] = content
		pres.partOrder = append(pres.partOrder, file.Name)
	}

	if err := pres.resolveSlideOrder(); err != nil {
		return nil, err
	}

	return pres, nil
}

func (p *Presentation) resolveSlideOrder() error {
	presPart, ok := p.parts["ppt/presentation.xml"]
	if !ok {
		return fmt.Errorf("ppt/presentation.xml not found: not a presentation")
	}

	var presDoc presentationXML
	if err := xml.Unmarshal(presPart, &presDoc); err != nil {
		return fmt.Errorf("failed to parse presentation.xml: %w", err)
	}

	relsPart, ok := p.parts["ppt/_rels/presentation.xml.rels"]
	if !ok {
		return fmt.Errorf("presentation relationships not found")
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(relsPart, &rels); err != nil {
		return fmt.Errorf("failed to parse presentation relationships: %w", err)
	}

	targets := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		targets[rel.ID] = rel.Target
	}

	for _, sld := range presDoc.SlideIDs {
		target, ok := targets[sld.RID]
		if !ok {
			return fmt.Errorf("slide relationship %s not found", sld.RID)
		}
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("ppt", target)
		}
		p.slidePaths = append(p.slidePaths, target)
	}

	return nil
}

// SlideCount reports the number of slides in document order.
func (p *Presentation) SlideCount() int {
	return len(p.slidePaths)
}

// ExtractText flattens all run text, slides in document order. Shape text
// comes first, then table cells row by row.
func (p *Presentation) ExtractText() string {
	var sections []string

	for idx, slidePath := range p.slidePaths {
		slide, err := p.parseSlide(slidePath)
		if err != nil {
			continue
		}

		var slideText []string
		for _, shape := range slide.Shapes {
			slideText = append(slideText, flattenTxBody(shape.TxBody)...)
		}

		for _, frame := range slide.Frames {
			if frame.Table == nil {
				continue
			}
			for _, row := range frame.Table.Rows {
				for _, cell := range row.Cells {
					slideText = append(slideText, flattenTxBody(cell.TxBody)...)
				}
			}
		}

		if len(slideText) > 0 {
			sections = append(sections, fmt.Sprintf("--- Slide %d ---\n%s", idx+1, strings.Join(slideText, "\n")))
		}
	}

	return strings.Join(sections, "\n\n")
}

// flattenTxBody joins each paragraph's runs into one line, skipping blanks.
func flattenTxBody(tx *txBodyXML) []string {
	if tx == nil {
		return nil
	}

	var lines []string
	for _, para := range tx.Paragraphs {
		var line strings.Builder
		for _, run := range para.Runs {
			line.WriteString(run.Text)
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

func (p *Presentation) parseSlide(slidePath string) (*slideXML, error) {
	raw, ok := p.parts[slidePath]
	if !ok {
		return nil, fmt.Errorf("slide part %s not found", slidePath)
	}

	var slide slideXML
	if err := xml.Unmarshal(raw, &slide); err != nil {
		return nil, fmt.Errorf("failed to parse slide %s: %w", slidePath, err)
	}

	return &slide, nil
}

// Save serializes the presentation back to PPTX bytes. Untouched parts are
// written exactly as they were read.
func (p *Presentation) Save() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, name := range p.partOrder {
		entry, err := writer.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry %s: %w", name, err)
		}
		if _, err := entry.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("failed to write zip entry %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize PPTX archive: %w", err)
	}

	return buf.Bytes(), nil
}
