// Package docx renders the constrained Markdown dialect produced by the
// brief generator into a DOCX document with styled headings, lists, and
// clickable hyperlinks.
package docx

import (
	"regexp"
	"strings"
)

// BlockKind identifies a block-level node in the parsed document.
type BlockKind int

const (
	BlockParagraph BlockKind = iota // Plain paragraph line
	BlockHeading                    // ATX heading, levels 1-3
	BlockBullet                     // "- " list item
	BlockNumbered                   // "1. " list item
	BlockBlank                      // Blank separator line
)

// Span is an inline run of text. A non-empty URL marks a hyperlink run whose
// display text equals the URL itself.
type Span struct {
	Text string
	URL  string
}

// Block is one block-level node: a kind, a heading level when applicable,
// and the inline spans of its text.
type Block struct {
	Kind  BlockKind
	Level int // 1-3 for headings, 0 otherwise
	Spans []Span
}

type listMode int

const (
	listNone listMode = iota
	listBullet
	listNumbered
)

var (
	numberedRe = regexp.MustCompile(`^\d+\.\s`)
	urlRe      = regexp.MustCompile(`https?://[^\s)]+`)
)

// Parse walks the Markdown text line by line, one pass, no backtracking.
// Headings, bullets, numbered items and blank lines are recognized; any
// other line falls through to a paragraph, so no input can fail to parse.
// Nested lists and inline emphasis are not part of the dialect.
func Parse(md string) []Block {
	var blocks []Block

	// List state resets on blank lines and headings. Every list line renders
	// independently, so the state does not alter output; it tracks whether
	// the cursor sits inside a list block.
	mode := listNone

	for _, raw := range splitLines(md) {
		line := strings.TrimRight(raw, " \t\r")

		if strings.TrimSpace(line) == "" {
			mode = listNone
			blocks = append(blocks, Block{Kind: BlockBlank})
			continue
		}

		if level, rest, ok := headingLine(line); ok {
			mode = listNone
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Spans: splitSpans(rest)})
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "- ") {
			if mode != listBullet {
				mode = listBullet
			}
			blocks = append(blocks, Block{Kind: BlockBullet, Spans: splitSpans(strings.TrimSpace(trimmed[2:]))})
			continue
		}
		if m := numberedRe.FindString(trimmed); m != "" {
			if mode != listNumbered {
				mode = listNumbered
			}
			blocks = append(blocks, Block{Kind: BlockNumbered, Spans: splitSpans(strings.TrimSpace(trimmed[len(m):]))})
			continue
		}

		mode = listNone
		blocks = append(blocks, Block{Kind: BlockParagraph, Spans: splitSpans(line)})
	}

	return blocks
}

// splitLines splits on newlines without manufacturing a final empty line
// from a trailing newline. Empty input yields no lines, and so an empty
// (valid) document.
func splitLines(md string) []string {
	if md == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(md, "\n"), "\n")
}

// headingLine matches the three supported ATX heading prefixes. A "#" glued
// to a word is not a heading and falls through to a paragraph.
func headingLine(line string) (level int, rest string, ok bool) {
	switch {
	case strings.HasPrefix(line, "### "):
		return 3, strings.TrimSpace(line[4:]), true
	case strings.HasPrefix(line, "## "):
		return 2, strings.TrimSpace(line[3:]), true
	case strings.HasPrefix(line, "# "):
		return 1, strings.TrimSpace(line[2:]), true
	}
	return 0, "", false
}

// splitSpans scans left to right for bare URLs and splits the text into
// plain and hyperlink runs. Text between links is preserved verbatim,
// including leading and trailing spaces.
func splitSpans(text string) []Span {
	var spans []Span
	pos := 0
	for _, m := range urlRe.FindAllStringIndex(text, -1) {
		if before := text[pos:m[0]]; before != "" {
			spans = append(spans, Span{Text: before})
		}
		url := text[m[0]:m[1]]
		spans = append(spans, Span{Text: url, URL: url})
		pos = m[1]
	}
	if tail := text[pos:]; tail != "" {
		spans = append(spans, Span{Text: tail})
	}
	return spans
}
