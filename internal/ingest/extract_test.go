package ingest

import (
	"strings"
	"testing"
)

func TestExtractText_PlainText(t *testing.T) {
	got := ExtractText("resume.txt", []byte("  Senior Go engineer.  \n"))
	if got != "Senior Go engineer." {
		t.Errorf("Expected trimmed passthrough, got %q", got)
	}
}

func TestExtractText_UnknownExtensionTreatedAsPlain(t *testing.T) {
	got := ExtractText("notes.rst", []byte("Some content."))
	if got != "Some content." {
		t.Errorf("Expected passthrough, got %q", got)
	}
}

func TestExtractText_MarkdownStripped(t *testing.T) {
	input := `# Jane Doe

**Senior Engineer** with experience in [Go](https://go.dev) and Kubernetes.

## Experience

- Led a team of five engineers.
- Shipped a payments platform.
`
	got := ExtractText("resume.md", []byte(input))

	for _, want := range []string{
		"Jane Doe",
		"Senior Engineer",
		"Go",
		"Led a team of five engineers.",
		"Shipped a payments platform.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Extracted text missing %q:\n%s", want, got)
		}
	}

	for _, unwanted := range []string{"#", "**", "[", "]("} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Extracted text still contains markdown syntax %q:\n%s", unwanted, got)
		}
	}
}

func TestExtractText_MarkdownDropsCodeBlocks(t *testing.T) {
	input := "Skills overview.\n\n```go\nfunc main() {}\n```\n\nMore prose."
	got := ExtractText("doc.md", []byte(input))

	if strings.Contains(got, "func main") {
		t.Errorf("Code block content should be dropped:\n%s", got)
	}
	if !strings.Contains(got, "Skills overview.") || !strings.Contains(got, "More prose.") {
		t.Errorf("Prose missing from extraction:\n%s", got)
	}
}
