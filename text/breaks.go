package text

import (
	"github.com/go-text/typesetting/segmenter"
)

// This file maps the Unicode segmentation algorithms onto byte positions:
// line break opportunities (UAX #14), word boundaries (UAX #29) and grapheme
// cluster boundaries. The segmenter works in rune indices, so every function
// converts through the rune start offsets of the text.
//
// A break position is the byte index where the next segment starts.

// runeByteOffsets returns the byte index of every rune start, plus len(text)
// as the final entry, indexed by rune position.
func runeByteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

// lineBreaks returns the allowed and mandatory break positions of the text,
// as sorted byte indices. A mandatory break follows a hard line break char,
// and len(text) is always a mandatory break. An allowed break is a position
// where a wrapping line may start.
func lineBreaks(text string) (allowed, mandatory []int) {
	if text == "" {
		return nil, []int{0}
	}
	offsets := runeByteOffsets(text)

	var seg segmenter.Segmenter
	seg.InitWithString(text)
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		end := offsets[line.Offset+len(line.Text)]
		if line.IsMandatoryBreak {
			mandatory = append(mandatory, end)
		} else {
			allowed = append(allowed, end)
		}
	}
	return allowed, mandatory
}

// wordBoundaries returns the sorted byte indices of the word boundaries of
// the text. A boundary lies at the start and end of every word, plus 0 and
// len(text).
func wordBoundaries(text string) []int {
	offsets := runeByteOffsets(text)

	var seg segmenter.Segmenter
	seg.InitWithString(text)
	boundaries := []int{0}
	iter := seg.WordIterator()
	for iter.Next() {
		word := iter.Word()
		start := offsets[word.Offset]
		end := offsets[word.Offset+len(word.Text)]
		if boundaries[len(boundaries)-1] != start {
			boundaries = append(boundaries, start)
		}
		boundaries = append(boundaries, end)
	}
	if boundaries[len(boundaries)-1] != len(text) {
		boundaries = append(boundaries, len(text))
	}
	return boundaries
}

// graphemeBoundaries returns the sorted byte indices of the grapheme cluster
// boundaries of the text, including 0 and len(text).
func graphemeBoundaries(text string) []int {
	offsets := runeByteOffsets(text)

	var seg segmenter.Segmenter
	seg.InitWithString(text)
	boundaries := []int{0}
	iter := seg.GraphemeIterator()
	for iter.Next() {
		g := iter.Grapheme()
		boundaries = append(boundaries, offsets[g.Offset+len(g.Text)])
	}
	return boundaries
}

// nextGraphemeBoundary returns the first grapheme cluster boundary after the
// byte index i.
func nextGraphemeBoundary(text string, i int) int {
	for _, b := range graphemeBoundaries(text) {
		if b > i {
			return b
		}
	}
	return len(text)
}

// prevGraphemeBoundary returns the last grapheme cluster boundary before the
// byte index i.
func prevGraphemeBoundary(text string, i int) int {
	prev := 0
	for _, b := range graphemeBoundaries(text) {
		if b >= i {
			break
		}
		prev = b
	}
	return prev
}
