// Package ingest loads documents, extracts their plain text, and drives
// them through chunking, embedding, and storage.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractText converts raw file bytes into the plain text fed to the
// chunker. Markdown files are stripped of their formatting; everything else
// is treated as plain text.
func ExtractText(fileName string, data []byte) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".md", ".markdown":
		return markdownToText(data)
	default:
		return strings.TrimSpace(string(data))
	}
}

// markdownToText walks the markdown AST and collects text content,
// separating block-level elements with newlines. Code blocks and raw HTML
// are dropped; they carry no sentence content worth embedding.
func markdownToText(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindListItem, ast.KindBlockquote:
			if b.Len() > 0 {
				b.WriteString("\n")
			}
		case ast.KindText:
			t := n.(*ast.Text)
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case ast.KindString:
			b.Write(n.(*ast.String).Value)
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
