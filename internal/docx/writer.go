package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Fixed style table. Sizes are half-points, spacing is twentieths of a point,
// so Normal is 11pt with 6pt after, H1 is 26pt bold with 6pt/8pt spacing, and
// so on. Rendered output is byte-reproducible for a given block sequence.
const (
	normalFont  = "Calibri"
	normalSize  = 22
	normalAfter = 120

	h1Font   = "Calibri Light"
	h1Size   = 52
	h1Before = 120
	h1After  = 160

	h2Size   = 40
	h2Before = 160
	h2After  = 120

	h3Size   = 28
	h3Before = 120
	h3After  = 80

	linkColor = "0000FF"
)

// hyperlink is one external link relationship in the document part.
type hyperlink struct {
	ID  string
	URL string
}

// Reserved relationship IDs in word/_rels/document.xml.rels; hyperlink IDs
// are assigned after these.
const firstHyperlinkRelID = 3

// RenderFile parses Markdown text and writes the styled DOCX to path.
func RenderFile(md, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create document %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := Write(f, Parse(md)); err != nil {
		return fmt.Errorf("failed to render document %s: %w", path, err)
	}
	return nil
}

// Write emits a complete DOCX package for the given blocks. The package is a
// zip of the minimal WordprocessingML parts: content types, package rels,
// the document, its styles and numbering definitions, and one relationship
// per hyperlink run.
func Write(w io.Writer, blocks []Block) error {
	body, links := documentXML(blocks)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", body},
		{"word/styles.xml", stylesXML()},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", documentRelsXML(links)},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create package part %s: %w", part.name, err)
		}
		if _, err := io.WriteString(pw, part.content); err != nil {
			return fmt.Errorf("failed to write package part %s: %w", part.name, err)
		}
	}
	return zw.Close()
}

// documentXML builds word/document.xml and the hyperlink relationships it
// references, in document order.
func documentXML(blocks []Block) (string, []hyperlink) {
	var b strings.Builder
	var links []hyperlink

	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	for _, block := range blocks {
		switch block.Kind {
		case BlockBlank:
			b.WriteString(`<w:p/>`)
		case BlockHeading:
			fmt.Fprintf(&b, `<w:p><w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, block.Level)
			links = writeSpans(&b, block.Spans, links)
			b.WriteString(`</w:p>`)
		case BlockBullet:
			b.WriteString(`<w:p><w:pPr><w:pStyle w:val="ListBullet"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
			links = writeSpans(&b, block.Spans, links)
			b.WriteString(`</w:p>`)
		case BlockNumbered:
			b.WriteString(`<w:p><w:pPr><w:pStyle w:val="ListNumber"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr>`)
			links = writeSpans(&b, block.Spans, links)
			b.WriteString(`</w:p>`)
		default:
			b.WriteString(`<w:p>`)
			links = writeSpans(&b, block.Spans, links)
			b.WriteString(`</w:p>`)
		}
	}

	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String(), links
}

// writeSpans emits the inline runs of a block. Link runs wrap the run in a
// w:hyperlink with an external relationship and carry the underline + blue
// formatting inline, so the output does not depend on a Hyperlink character
// style being honored by the consumer.
func writeSpans(b *strings.Builder, spans []Span, links []hyperlink) []hyperlink {
	for _, span := range spans {
		if span.URL == "" {
			b.WriteString(`<w:r><w:t xml:space="preserve">`)
			b.WriteString(escape(span.Text))
			b.WriteString(`</w:t></w:r>`)
			continue
		}

		relID := fmt.Sprintf("rId%d", firstHyperlinkRelID+len(links))
		links = append(links, hyperlink{ID: relID, URL: span.URL})

		fmt.Fprintf(b, `<w:hyperlink r:id="%s">`, relID)
		b.WriteString(`<w:r><w:rPr><w:u w:val="single"/><w:color w:val="` + linkColor + `"/><w:noProof/></w:rPr><w:t xml:space="preserve">`)
		b.WriteString(escape(span.Text))
		b.WriteString(`</w:t></w:r></w:hyperlink>`)
	}
	return links
}

// documentRelsXML lists the style and numbering parts plus every hyperlink
// target as an external relationship.
func documentRelsXML(links []hyperlink) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	for _, link := range links {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="%s" TargetMode="External"/>`,
			link.ID, escapeAttr(link.URL))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// stylesXML defines Normal, the three heading styles, and the two list
// styles per the fixed style table.
func stylesXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)

	fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="Normal" w:default="1"><w:name w:val="Normal"/><w:pPr><w:spacing w:before="0" w:after="%d"/></w:pPr><w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:sz w:val="%d"/></w:rPr></w:style>`,
		normalAfter, normalFont, normalFont, normalSize)

	heading := func(level int, font string, size, before, after int) {
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="Heading%d"><w:name w:val="heading %d"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:before="%d" w:after="%d"/></w:pPr><w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:b/><w:sz w:val="%d"/></w:rPr></w:style>`,
			level, level, before, after, font, font, size)
	}
	heading(1, h1Font, h1Size, h1Before, h1After)
	heading(2, normalFont, h2Size, h2Before, h2After)
	heading(3, normalFont, h3Size, h3Before, h3After)

	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListNumber"><w:name w:val="List Number"/><w:basedOn w:val="Normal"/></w:style>`)
	b.WriteString(`</w:styles>`)
	return b.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/><Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/></Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// numberingXML defines one bullet and one decimal list. numId 1 is the
// bullet list, numId 2 the numbered list.
const numberingXML = xml.Header + `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/><w:lvlText w:val="&#8226;"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum><w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum><w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num><w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num></w:numbering>`

// escape encodes text content for embedding in XML element bodies.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// escapeAttr encodes a value for embedding in an XML attribute.
func escapeAttr(s string) string {
	return escape(s)
}
