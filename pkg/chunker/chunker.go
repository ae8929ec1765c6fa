package chunker

import (
	"strings"
)

const (
	// ChunkSize is the target maximum chunk length in characters.
	ChunkSize = 1000
	// ChunkOverlap is the number of characters shared by adjacent chunks
	// when size-based splitting is used.
	ChunkOverlap = 200
)

// Chunk is one retrieval unit. Section carries the normalized label of the
// detected section the chunk came from, empty in fallback mode.
type Chunk struct {
	Text    string
	Section string
}

// sentence terminators searched for when a window boundary falls mid-sentence
var sentenceBreaks = []string{". ", ".\n", "! ", "!\n", "? ", "?\n"}

// Split divides text into ordered chunks. When at least two sections are
// detected, each section becomes its own chunk (split further only if it
// exceeds ChunkSize); otherwise the whole text is size-chunked with overlap.
func Split(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sections := detectSections(text)
	if len(sections) < 2 {
		return sizeChunks(text, "")
	}

	var chunks []Chunk
	for _, sec := range sections {
		if strings.TrimSpace(sec.content) == "" {
			continue
		}
		if len(sec.content) <= ChunkSize {
			chunks = append(chunks, Chunk{Text: strings.TrimSpace(sec.content), Section: sec.label})
			continue
		}
		chunks = append(chunks, sizeChunks(sec.content, sec.label)...)
	}
	return chunks
}

// sizeChunks walks forward in ChunkSize windows. When a boundary falls
// mid-sentence it backtracks to the last sentence break in the window,
// provided that break is past the window midpoint. Consecutive windows
// overlap by ChunkOverlap characters.
func sizeChunks(text string, section string) []Chunk {
	if len(text) <= ChunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []Chunk{{Text: trimmed, Section: section}}
	}

	var chunks []Chunk
	start := 0

	for start < len(text) {
		end := start + ChunkSize

		if end >= len(text) {
			if chunk := strings.TrimSpace(text[start:]); chunk != "" {
				chunks = append(chunks, Chunk{Text: chunk, Section: section})
			}
			break
		}

		window := text[start:end]
		for _, punct := range sentenceBreaks {
			last := strings.LastIndex(window, punct)
			if last > ChunkSize/2 {
				end = start + last + len(punct)
				break
			}
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, Chunk{Text: chunk, Section: section})
		}

		start = end - ChunkOverlap
	}

	return chunks
}
