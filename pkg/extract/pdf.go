package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF returns page text in page order separated by blank lines and a
// tally of span-level fonts and sizes. The PDF content model does not expose
// fill colors at this level, so the color set stays empty for PDFs.
func extractPDF(data []byte) (string, *Tally) {
	tally := NewTally()
	if len(data) == 0 {
		return "", tally
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", tally
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		var sb strings.Builder
		for _, span := range content.Text {
			font := span.Font
			bold := fontImpliesBold(font)
			italic := fontImpliesItalic(font)
			tally.Add(font, span.FontSize, bold, italic, "")
			sb.WriteString(span.S)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) > 0 {
		return strings.Join(parts, "\n\n"), tally
	}

	// Span walk produced nothing; fall back to the plain text stream.
	if r, err := reader.GetPlainText(); err == nil {
		if out, err := io.ReadAll(r); err == nil {
			return strings.TrimSpace(string(out)), tally
		}
	}

	return "", tally
}

func fontImpliesBold(font string) bool {
	return strings.Contains(strings.ToLower(font), "bold")
}

func fontImpliesItalic(font string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
