package extract

import (
	"strings"
)

// Extract pulls plain text plus a typography tally out of raw document
// bytes. Content-level failures (corrupt files, unknown encodings) yield an
// empty result, never an error: a single bad upload must not abort a batch
// ingest, so the caller only needs to handle the empty case.
func Extract(data []byte, mimeType string) (text string, tally *Tally) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			tally = NewTally()
		}
	}()

	mime := strings.ToLower(mimeType)

	switch {
	case strings.Contains(mime, "pdf"):
		return extractPDF(data)
	case strings.Contains(mime, "wordprocessingml"), strings.Contains(mime, "docx"):
		return extractDOCX(data)
	case strings.Contains(mime, "spreadsheetml"), strings.Contains(mime, "xlsx"):
		return extractXLSX(data)
	case strings.Contains(mime, "text"):
		return strings.ToValidUTF8(string(data), "�"), NewTally()
	default:
		return "", NewTally()
	}
}
