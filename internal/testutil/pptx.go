// Package testutil builds minimal but structurally valid PPTX archives for
// tests, so they do not depend on binary fixture files checked into the repo.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// ShapeSpec describes one shape on a generated slide.
type ShapeSpec struct {
	Name  string
	Descr string
	// Paragraphs become one a:p per entry, each with a single plain run.
	Paragraphs []string
	// Picture emits a p:pic instead of a p:sp. Pictures carry no txBody.
	Picture bool
	// TableRows emits a p:graphicFrame holding an a:tbl, one a:tc with a
	// single-run txBody per cell.
	TableRows [][]string
}

// SlideSpec describes one slide of a generated deck.
type SlideSpec struct {
	Shapes []ShapeSpec
}

// BuildPPTX assembles a deck with the given slides. The archive carries the
// content-types part, the package relationships, a presentation part wired to
// every slide and per-slide XML with real drawing namespaces, which is enough
// for any OOXML-aware reader to open it.
func BuildPPTX(slides ...SlideSpec) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	writePart(w, "[Content_Types].xml", contentTypes(len(slides)))
	writePart(w, "_rels/.rels", packageRels)
	writePart(w, "ppt/presentation.xml", presentationPart(len(slides)))
	writePart(w, "ppt/_rels/presentation.xml.rels", presentationRels(len(slides)))

	for i, slide := range slides {
		writePart(w, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slidePart(slide))
	}

	if err := w.Close(); err != nil {
		panic(fmt.Sprintf("testutil: failed to build PPTX: %v", err))
	}

	return buf.Bytes()
}

func writePart(w *zip.Writer, name, content string) {
	entry, err := w.Create(name)
	if err != nil {
		panic(fmt.Sprintf("testutil: failed to create part %s: %v", name, err))
	}
	if _, err := entry.Write([]byte(content)); err != nil {
		panic(fmt.Sprintf("testutil: failed to write part %s: %v", name, err))
	}
}

func contentTypes(slideCount int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const packageRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

func presentationPart(slideCount int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i)
	}
	b.WriteString(`</p:sldIdLst>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRels(slideCount int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i, i)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slidePart(slide SlideSpec) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	for i, shape := range slide.Shapes {
		switch {
		case shape.Picture:
			writePic(&b, i+2, shape)
		case shape.TableRows != nil:
			writeTableFrame(&b, i+2, shape)
		default:
			writeShape(&b, i+2, shape)
		}
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writeShape(b *strings.Builder, id int, shape ShapeSpec) {
	b.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s"`, id, escape(shape.Name))
	if shape.Descr != "" {
		fmt.Fprintf(b, ` descr="%s"`, escape(shape.Descr))
	}
	b.WriteString(`/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>`)
	if len(shape.Paragraphs) == 0 {
		b.WriteString(`<a:p/>`)
	}
	for _, text := range shape.Paragraphs {
		fmt.Fprintf(b, `<a:p><a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r></a:p>`, escape(text))
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writePic(b *strings.Builder, id int, shape ShapeSpec) {
	b.WriteString(`<p:pic><p:nvPicPr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s"`, id, escape(shape.Name))
	if shape.Descr != "" {
		fmt.Fprintf(b, ` descr="%s"`, escape(shape.Descr))
	}
	b.WriteString(`/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`)
	b.WriteString(`<p:blipFill><a:blip/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
	b.WriteString(`<p:spPr/></p:pic>`)
}

func writeTableFrame(b *strings.Builder, id int, shape ShapeSpec) {
	b.WriteString(`<p:graphicFrame><p:nvGraphicFramePr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s"`, id, escape(shape.Name))
	if shape.Descr != "" {
		fmt.Fprintf(b, ` descr="%s"`, escape(shape.Descr))
	}
	b.WriteString(`/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`)
	b.WriteString(`<a:tbl><a:tblPr/><a:tblGrid/>`)
	for _, row := range shape.TableRows {
		b.WriteString(`<a:tr h="370840">`)
		for _, cell := range row {
			fmt.Fprintf(b, `<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>%s</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>`, escape(cell))
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
