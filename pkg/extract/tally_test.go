package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyTopFonts(t *testing.T) {
	tally := NewTally()
	tally.Add("Calibri", 11, false, false, "")
	tally.Add("Calibri", 11, false, false, "")
	tally.Add("Arial", 22, true, false, "")
	tally.Add("Georgia", 11, false, true, "")

	// Frequency descending, name ascending on the Arial/Georgia tie.
	assert.Equal(t, []string{"Calibri", "Arial", "Georgia"}, tally.TopFonts(5))
	assert.Equal(t, []string{"Calibri", "Arial"}, tally.TopFonts(2))
}

func TestTallyAvgFontSize(t *testing.T) {
	tally := NewTally()
	tally.Add("Arial", 20, false, false, "")
	tally.Add("Arial", 24, false, false, "")

	assert.InDelta(t, 22.0, tally.AvgFontSize("Arial"), 0.001)
	assert.Equal(t, 0.0, tally.AvgFontSize("Unknown"))
}

func TestTallyColorsDistinctOrdered(t *testing.T) {
	tally := NewTally()
	tally.Add("Arial", 11, false, false, "333333")
	tally.Add("Arial", 11, false, false, "333333")
	tally.Add("Arial", 11, false, false, "1F4E79")
	tally.Add("Arial", 11, false, false, "")

	assert.Equal(t, []string{"333333", "1F4E79"}, tally.Colors())
}

func TestTallyEmphasisCounts(t *testing.T) {
	tally := NewTally()
	tally.Add("Arial", 11, true, false, "")
	tally.Add("Arial", 11, true, true, "")
	tally.Add("Arial", 11, false, false, "")

	assert.Equal(t, 2, tally.BoldCount)
	assert.Equal(t, 1, tally.ItalicCount)
	assert.Equal(t, 3, tally.RunCount)
}

func TestTallyMerge(t *testing.T) {
	a := NewTally()
	a.Add("Arial", 11, true, false, "333333")

	b := NewTally()
	b.Add("Arial", 13, false, false, "333333")
	b.Add("Calibri", 11, false, true, "000000")

	a.Merge(b)

	assert.Equal(t, 2, a.FontCount("Arial"))
	assert.Equal(t, 1, a.FontCount("Calibri"))
	assert.InDelta(t, 12.0, a.AvgFontSize("Arial"), 0.001)
	assert.Equal(t, 1, a.BoldCount)
	assert.Equal(t, 1, a.ItalicCount)
	assert.Equal(t, 3, a.RunCount)

	a.Merge(nil)
	assert.Equal(t, 3, a.RunCount)
}

func TestExtractPlainText(t *testing.T) {
	text, tally := Extract([]byte("Scope of work: replace vanity."), "text/plain")

	assert.Equal(t, "Scope of work: replace vanity.", text)
	assert.NotNil(t, tally)
	assert.Equal(t, 0, tally.RunCount)
}

func TestExtractUnsupportedMime(t *testing.T) {
	text, tally := Extract([]byte{0x01, 0x02}, "application/octet-stream")

	assert.Equal(t, "", text)
	assert.NotNil(t, tally)
}

func TestExtractCorruptPDF(t *testing.T) {
	// Not a real PDF; extraction degrades to empty output rather than failing.
	text, _ := Extract([]byte("definitely not a pdf"), "application/pdf")

	assert.Equal(t, "", text)
}
