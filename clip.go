package wikeddiff

import (
	"regexp"
	"strings"

	"github.com/dacharyc/wikeddiff/internal/unicount"
)

// Stream is the clipped, bracket-grouped fragment stream (spec §6's
// grammar): '{' container '}' where container is one or more
// comma-separated '[' fragments ']' blocks. Blocks beyond the first only
// appear when clipping split a fragment.
type Stream struct {
	Blocks [][]Fragment
}

var (
	reHeadingEnd = regexp.MustCompile(`(?m)^=+[^\n=]+=+[ \t]*\n`)
	reClipBlank  = regexp.MustCompile(`[ \t]+`)
)

// clipStream implements spec §4.7 over the assembled fragment list,
// splicing omission markers into long, colorless "=" fragments and
// splitting the stream into additional comma-joined blocks wherever a
// fragment clips on both sides.
func clipStream(frags []Fragment, cfg *Config) *Stream {
	if cfg.fullDiff {
		return &Stream{Blocks: [][]Fragment{frags}}
	}
	n := len(frags)
	var blocks [][]Fragment
	var current []Fragment
	for i, f := range frags {
		head, tail, split := clipFragment(f, cfg, i == 0, i == n-1)
		current = append(current, head...)
		if split {
			blocks = append(blocks, current)
			current = tail
		}
	}
	blocks = append(blocks, current)
	return &Stream{Blocks: blocks}
}

// clipFragment decides whether f qualifies for clipping and, if so,
// returns its replacement head (and, when both sides clip, a tail that
// starts a new bracket block). Non-"=" fragments, colored fragments (move
// content), and fragments at or under the smaller configured minimum pass
// through untouched.
func clipFragment(f Fragment, cfg *Config, isFirst, isLast bool) (head, tail []Fragment, split bool) {
	if f.Type != FragSame || f.Color != None {
		return []Fragment{f}, nil, false
	}
	cps := unicount.CodepointLen(f.Text)
	minThresh := cfg.clipCharsLeft
	if cfg.clipCharsRight < minThresh {
		minThresh = cfg.clipCharsRight
	}
	if cps <= minThresh {
		return []Fragment{f}, nil, false
	}

	var leftPos, rightPos int
	var leftMarker, rightMarker FragmentType
	leftOK, rightOK := false, false
	if !isFirst {
		leftPos, leftMarker, leftOK = findLeftClip(f.Text, cfg)
	}
	if !isLast {
		rightPos, rightMarker, rightOK = findRightClip(f.Text, cfg)
	}
	if !leftOK && !rightOK {
		return []Fragment{f}, nil, false
	}

	if leftOK && rightOK {
		if rightPos <= leftPos {
			return []Fragment{f}, nil, false
		}
		gapText := sliceCP(f.Text, leftPos, rightPos)
		gapCP := rightPos - leftPos
		if gapCP < cfg.clipSkipChars || strings.Count(gapText, "\n") < cfg.clipSkipLines {
			return []Fragment{f}, nil, false
		}
		return clipHeadFragments(f.Text, leftPos, leftMarker), clipTailFragments(f.Text, rightPos, cps, rightMarker), true
	}
	if leftOK {
		return clipHeadFragments(f.Text, leftPos, leftMarker), nil, false
	}
	return clipTailFragments(f.Text, rightPos, cps, rightMarker), nil, false
}

// noMarker is the sentinel meaning "a boundary was found but it carries
// no omission marker" (paragraph/line breaks show structure on their own).
const noMarker = FragmentType(-1)

func clipHeadFragments(text string, pos int, marker FragmentType) []Fragment {
	head := sliceCP(text, 0, pos)
	head = strings.TrimRight(head, "\n")
	if marker == FragClipChars || marker == FragClipBlankLeft {
		head = strings.TrimRight(head, " \t")
	}
	out := []Fragment{{Type: FragSame, Text: head, Color: None}}
	if marker != noMarker {
		out = append(out, Fragment{Type: marker, Color: None})
	}
	return out
}

func clipTailFragments(text string, pos, total int, marker FragmentType) []Fragment {
	tail := sliceCP(text, pos, total)
	tail = strings.TrimLeft(tail, "\n")
	if marker == FragClipChars || marker == FragClipBlankRight {
		tail = strings.TrimLeft(tail, " \t")
	}
	var out []Fragment
	if marker != noMarker {
		out = append(out, Fragment{Type: marker, Color: None})
	}
	out = append(out, Fragment{Type: FragSame, Text: tail, Color: None})
	return out
}

// findLeftClip searches, in priority order (heading, paragraph, line,
// blank, fixed chars), for the earliest boundary within each type's own
// codepoint window from the left edge, returning the globally earliest
// candidate found across all types.
func findLeftClip(text string, cfg *Config) (int, FragmentType, bool) {
	best, bestMarker := -1, noMarker
	try := func(cands []int, mk FragmentType) {
		for _, p := range cands {
			if best == -1 || p < best {
				best, bestMarker = p, mk
			}
		}
	}
	try(clipCandidatePositions(text, reHeadingEnd, 0, cfg.clipHeadingLeft, false), noMarker)
	try(clipCandidatePositions(text, reParagraph, cfg.clipParagraphLeftMin, cfg.clipParagraphLeftMax, false), noMarker)
	try(clipCandidatePositions(text, reLine, cfg.clipLineLeftMin, cfg.clipLineLeftMax, false), noMarker)
	try(clipCandidatePositions(text, reClipBlank, cfg.clipBlankLeftMin, cfg.clipBlankLeftMax, false), FragClipBlankLeft)
	if best == -1 {
		cps := unicount.CodepointLen(text)
		if cfg.clipCharsLeft > 0 && cfg.clipCharsLeft < cps {
			best, bestMarker = cfg.clipCharsLeft, FragClipChars
		}
	}
	if best == -1 && cfg.clipLinesLeftMax > 0 {
		if p, ok := nthNewlinePos(text, cfg.clipLinesLeftMax, false); ok {
			best, bestMarker = p, noMarker
		}
	}
	if best == -1 {
		return 0, noMarker, false
	}
	return best, bestMarker, true
}

// findRightClip mirrors findLeftClip from the right edge, preferring the
// boundary closest to the end (maximizing how much interior text is
// discarded) within each type's window.
func findRightClip(text string, cfg *Config) (int, FragmentType, bool) {
	best, bestMarker := -1, noMarker
	try := func(cands []int, mk FragmentType) {
		for _, p := range cands {
			if best == -1 || p > best {
				best, bestMarker = p, mk
			}
		}
	}
	try(clipCandidatePositions(text, reHeadingEnd, 0, cfg.clipHeadingRight, true), noMarker)
	try(clipCandidatePositions(text, reParagraph, cfg.clipParagraphRightMin, cfg.clipParagraphRightMax, true), noMarker)
	try(clipCandidatePositions(text, reLine, cfg.clipLineRightMin, cfg.clipLineRightMax, true), noMarker)
	try(clipCandidatePositions(text, reClipBlank, cfg.clipBlankRightMin, cfg.clipBlankRightMax, true), FragClipBlankRight)
	if best == -1 {
		cps := unicount.CodepointLen(text)
		if cfg.clipCharsRight > 0 && cfg.clipCharsRight < cps {
			best, bestMarker = cps-cfg.clipCharsRight, FragClipChars
		}
	}
	if best == -1 && cfg.clipLinesRightMax > 0 {
		if p, ok := nthNewlinePos(text, cfg.clipLinesRightMax, true); ok {
			best, bestMarker = p, noMarker
		}
	}
	if best == -1 {
		return 0, noMarker, false
	}
	return best, bestMarker, true
}

// nthNewlinePos returns the codepoint offset just past the nth newline
// counted from the given edge (from the left when fromRight is false,
// from the right otherwise), implementing the clipLines*Max candidate:
// a cap on how many lines a clip may span when no other boundary type
// matched. Reports false if text has fewer than n newlines.
func nthNewlinePos(text string, n int, fromRight bool) (int, bool) {
	var offs []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offs = append(offs, i)
		}
	}
	if len(offs) < n {
		return 0, false
	}
	var byteOff int
	if fromRight {
		byteOff = offs[len(offs)-n] + 1
	} else {
		byteOff = offs[n-1] + 1
	}
	return unicount.CodepointIndexAtByte(text, byteOff), true
}

// clipCandidatePositions returns, for every match of re in text, the
// match's end codepoint offset, filtered to those whose distance from the
// relevant edge (the start for a left search, the end for a right search)
// falls within [min,max].
func clipCandidatePositions(text string, re *regexp.Regexp, min, max int, fromRight bool) []int {
	if re == nil || max <= 0 {
		return nil
	}
	total := unicount.CodepointLen(text)
	var positions []int
	for _, loc := range re.FindAllStringIndex(text, -1) {
		endCP := unicount.CodepointIndexAtByte(text, loc[1])
		dist := endCP
		if fromRight {
			dist = total - endCP
		}
		if dist >= min && dist <= max {
			positions = append(positions, endCP)
		}
	}
	return positions
}

func sliceCP(s string, fromCP, toCP int) string {
	fromB := unicount.ByteIndexAtCodepoint(s, fromCP)
	toB := unicount.ByteIndexAtCodepoint(s, toCP)
	return s[fromB:toB]
}
