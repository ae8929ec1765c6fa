package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// extractDOCX walks word/document.xml: paragraph text first (empty
// paragraphs skipped), then table rows rendered as pipe-joined cells. Run
// properties feed the typography tally (fonts, half-point sizes, bold,
// italic, color).
func extractDOCX(data []byte) (string, *Tally) {
	tally := NewTally()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", tally
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", tally
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", tally
			}
			break
		}
	}
	if docXML == nil {
		return "", tally
	}

	return parseDocumentXML(docXML, tally), tally
}

func parseDocumentXML(docXML []byte, tally *Tally) string {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))

	var parts []string
	var paragraph strings.Builder
	var cell strings.Builder
	var row []string

	inTable := 0
	inRunProps := false

	// Current run properties, reset at each run start
	var runFont, runColor string
	var runSize float64
	var runBold, runItalic bool

	flushParagraph := func() {
		if text := strings.TrimSpace(paragraph.String()); text != "" {
			if inTable > 0 {
				cell.WriteString(text)
				cell.WriteString(" ")
			} else {
				parts = append(parts, text)
			}
		}
		paragraph.Reset()
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				inTable++
			case "tr":
				row = row[:0]
			case "tc":
				cell.Reset()
			case "r":
				runFont, runColor = "", ""
				runSize = 0
				runBold, runItalic = false, false
			case "rPr":
				inRunProps = true
			case "rFonts":
				if inRunProps {
					for _, attr := range el.Attr {
						if attr.Name.Local == "ascii" && attr.Value != "" {
							runFont = attr.Value
						}
					}
				}
			case "sz":
				if inRunProps {
					for _, attr := range el.Attr {
						if attr.Name.Local == "val" {
							if halfPoints, err := strconv.ParseFloat(attr.Value, 64); err == nil {
								runSize = halfPoints / 2
							}
						}
					}
				}
			case "b":
				if inRunProps && !boolAttrOff(el) {
					runBold = true
				}
			case "i":
				if inRunProps && !boolAttrOff(el) {
					runItalic = true
				}
			case "color":
				if inRunProps {
					for _, attr := range el.Attr {
						if attr.Name.Local == "val" && attr.Value != "auto" {
							runColor = strings.ToUpper(attr.Value)
						}
					}
				}
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &el); err == nil {
					paragraph.WriteString(text)
					if text != "" {
						tally.Add(runFont, runSize, runBold, runItalic, runColor)
					}
				}
			}

		case xml.EndElement:
			switch el.Name.Local {
			case "tbl":
				if inTable > 0 {
					inTable--
				}
			case "tr":
				if cells := nonEmpty(row); len(cells) > 0 {
					parts = append(parts, strings.Join(cells, " | "))
				}
			case "tc":
				flushParagraph()
				row = append(row, strings.TrimSpace(cell.String()))
				cell.Reset()
			case "p":
				flushParagraph()
			case "rPr":
				inRunProps = false
			}
		}
	}

	return strings.Join(parts, "\n")
}

func boolAttrOff(el xml.StartElement) bool {
	for _, attr := range el.Attr {
		if attr.Name.Local == "val" && (attr.Value == "false" || attr.Value == "0" || attr.Value == "none") {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
