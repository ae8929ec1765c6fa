package extract

import "sort"

// Tally accumulates typography and color observations while text is being
// extracted. Counts are keyed per font/size/color so callers can rank by
// frequency afterwards.
type Tally struct {
	fontCounts  map[string]int
	fontSizeSum map[string]float64
	sizeCounts  map[float64]int
	colorCounts map[string]int

	BoldCount   int
	ItalicCount int
	RunCount    int
}

func NewTally() *Tally {
	return &Tally{
		fontCounts:  make(map[string]int),
		fontSizeSum: make(map[string]float64),
		sizeCounts:  make(map[float64]int),
		colorCounts: make(map[string]int),
	}
}

// Add records one text run observation. Empty fields are skipped.
func (t *Tally) Add(font string, size float64, bold, italic bool, color string) {
	t.RunCount++
	if font != "" {
		t.fontCounts[font]++
		t.fontSizeSum[font] += size
	}
	if size > 0 {
		t.sizeCounts[size]++
	}
	if color != "" {
		t.colorCounts[color]++
	}
	if bold {
		t.BoldCount++
	}
	if italic {
		t.ItalicCount++
	}
}

// Merge folds another tally into this one.
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	for k, v := range other.fontCounts {
		t.fontCounts[k] += v
	}
	for k, v := range other.fontSizeSum {
		t.fontSizeSum[k] += v
	}
	for k, v := range other.sizeCounts {
		t.sizeCounts[k] += v
	}
	for k, v := range other.colorCounts {
		t.colorCounts[k] += v
	}
	t.BoldCount += other.BoldCount
	t.ItalicCount += other.ItalicCount
	t.RunCount += other.RunCount
}

// TopFonts returns up to n font names ordered by frequency descending, name
// ascending on ties.
func (t *Tally) TopFonts(n int) []string {
	names := make([]string, 0, len(t.fontCounts))
	for name := range t.fontCounts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := t.fontCounts[names[i]], t.fontCounts[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// TopSizes returns up to n point sizes ordered by frequency descending, size
// descending on ties.
func (t *Tally) TopSizes(n int) []float64 {
	sizes := make([]float64, 0, len(t.sizeCounts))
	for size := range t.sizeCounts {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool {
		ci, cj := t.sizeCounts[sizes[i]], t.sizeCounts[sizes[j]]
		if ci != cj {
			return ci > cj
		}
		return sizes[i] > sizes[j]
	})
	if len(sizes) > n {
		sizes = sizes[:n]
	}
	return sizes
}

// Colors returns the distinct color set, most frequent first, hex ascending
// on ties.
func (t *Tally) Colors() []string {
	colors := make([]string, 0, len(t.colorCounts))
	for c := range t.colorCounts {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		ci, cj := t.colorCounts[colors[i]], t.colorCounts[colors[j]]
		if ci != cj {
			return ci > cj
		}
		return colors[i] < colors[j]
	})
	return colors
}

// AvgFontSize returns the mean observed size for a font, 0 when unseen.
func (t *Tally) AvgFontSize(font string) float64 {
	count := t.fontCounts[font]
	if count == 0 {
		return 0
	}
	return t.fontSizeSum[font] / float64(count)
}

// FontCount exposes the raw frequency for a font name.
func (t *Tally) FontCount(font string) int {
	return t.fontCounts[font]
}
