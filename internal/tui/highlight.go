// Package tui provides the Bubble Tea review interface.
package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

type span struct {
	start int
	end   int
}

// findMatches returns rune ranges of text that equal word, ignoring case.
// Matches do not overlap.
func findMatches(text, word []rune) []span {
	if len(word) == 0 || len(word) > len(text) {
		return nil
	}
	var spans []span
	for i := 0; i+len(word) <= len(text); {
		if foldEqual(text[i:i+len(word)], word) {
			spans = append(spans, span{start: i, end: i + len(word)})
			i += len(word)
			continue
		}
		i++
	}
	return spans
}

func foldEqual(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

// buildHighlightRunes styles text rune by rune, using highlight for every
// case-insensitive occurrence of word and base for the rest.
func buildHighlightRunes(text, word string, base, highlight lipgloss.Style) []styledRune {
	textRunes := []rune(text)
	matches := findMatches(textRunes, []rune(strings.TrimSpace(word)))

	out := make([]styledRune, 0, len(textRunes))
	next := 0
	for i, r := range textRunes {
		style := base
		for next < len(matches) && matches[next].end <= i {
			next++
		}
		if next < len(matches) && i >= matches[next].start {
			style = highlight
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
