package wikeddiff

import "unicode"

// slideGaps runs the gap slider over both active lists, once treating NEW
// as the sliding side and once treating OLD as the sliding side (spec
// §4.3 calls for running the slider twice per refinement level to cover
// either asymmetry). Every relink it performs swaps one already-linked
// boundary token for an adjacent gap token with byte-identical text, so it
// can only ever change *which* equal-text tokens are linked, never the set
// of matched content — link symmetry and the NEW/OLD content partition are
// preserved by construction.
func slideGaps(newV, oldV *textVersion) {
	slideSide(newV.arena, oldV.arena)
	slideSide(oldV.arena, newV.arena)
}

// slideSide slides every maximal unlinked run in selfArena's active list
// down to absorb identical-text boundary tokens, then slides the result
// back up to the nearest good stop point, relinking the corresponding
// otherArena counterparts to match at every step.
func slideSide(selfArena, otherArena *arena) {
	i := selfArena.first
	for i != None {
		t := selfArena.at(i)
		if t.Link != None {
			i = t.Next
			continue
		}
		front := i
		finalPos, steps := slideRunDown(selfArena, otherArena, i)
		stop := slideRunUp(selfArena, otherArena, front, finalPos, steps)
		if stop == finalPos {
			i = finalPos
		} else {
			i = selfArena.at(stop).Next
		}
	}
}

// findNextLinked returns the first linked token reachable via Next from
// (and including) from, or None.
func findNextLinked(ar *arena, from int) int {
	for i := from; i != None; i = ar.at(i).Next {
		if ar.at(i).Link != None {
			return i
		}
	}
	return None
}

// slideStep records one absorption performed by slideRunDown, so
// slideRunUp can undo it exactly if a better stop point is found further
// back.
type slideStep struct {
	gapPos   int // the gap position that absorbed boundary
	boundary int // the boundary token that was absorbed
	other    int // boundary's counterpart in the other arena
}

// slideRunDown repeatedly relinks the boundary token immediately following
// gapStart into gapStart itself, whenever their text is identical: the
// boundary's OLD/NEW counterpart is relinked to gapStart, and the former
// boundary token joins the gap (becomes unlinked). It returns the first
// token after the run once no further absorption is possible — either the
// next linked token, or None at the list's end — along with every step it
// took, so the caller can reconsider where to actually stop.
func slideRunDown(selfArena, otherArena *arena, gapStart int) (finalPos int, steps []slideStep) {
	for {
		if gapStart == None {
			return None, steps
		}
		gTok := selfArena.at(gapStart)
		if gTok.Link != None {
			return gapStart, steps
		}
		boundary := findNextLinked(selfArena, gapStart)
		if boundary == None {
			return None, steps
		}
		bTok := selfArena.at(boundary)
		if bTok.Text != gTok.Text {
			return boundary, steps
		}
		other := bTok.Link
		unlinkPair(selfArena, otherArena, boundary, other)
		link(selfArena, otherArena, gapStart, other)
		steps = append(steps, slideStep{gapPos: gapStart, boundary: boundary, other: other})
		gapStart = selfArena.at(gapStart).Next
	}
}

// slideRunUp implements spec §4.3's extend-up phase. slideRunDown only
// ever absorbs a boundary whose text exactly matches the token already
// occupying the gap position it's absorbed into, so every intermediate
// position it passed through shares the gap's original front token's
// text — and hence its slideBorder class — by construction; only
// finalPos, the boundary that broke the chain, can possibly differ.
// So: keep finalPos if it's followed by the slideStop newline pattern, or
// if its slideBorder class already differs from front's (the ordinary
// case — the absorbed run ended at a genuine word/blank transition).
// Otherwise nothing in the run represents a real boundary, so the slide
// gained nothing: undo every absorption and land back on front.
func slideRunUp(selfArena, otherArena *arena, front, finalPos int, steps []slideStep) int {
	if finalPos == None {
		return finalPos
	}
	if slideStopMatch(selfArena.at(finalPos).Text) {
		return finalPos
	}
	if slideBorderClass(selfArena.at(finalPos).Text) != slideBorderClass(selfArena.at(front).Text) {
		return finalPos
	}
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		unlinkPair(selfArena, otherArena, s.gapPos, s.other)
		link(selfArena, otherArena, s.boundary, s.other)
	}
	return front
}

// slideClass is the slideBorder character class a token's leading rune
// falls into.
type slideClass int

const (
	slideClassNewline slideClass = iota
	slideClassBlank
	slideClassWord
	slideClassPunct
	slideClassOther
)

// slideBorderClass classifies text by its leading rune, per the
// slideBorder side regex spec §6 requires any reimplementation to
// reproduce: newline, blank, word, sentence-punctuation, or other.
func slideBorderClass(text string) slideClass {
	if text == "" {
		return slideClassOther
	}
	r := []rune(text)[0]
	switch {
	case isSlideNewlineRune(r):
		return slideClassNewline
	case isSlideBlankRune(r):
		return slideClassBlank
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return slideClassWord
	case isSlidePunctRune(r):
		return slideClassPunct
	default:
		return slideClassOther
	}
}

// slideStopMatch reports whether text begins with the slideStop newline
// pattern.
func slideStopMatch(text string) bool {
	return text != "" && isSlideNewlineRune([]rune(text)[0])
}

// slideNewlineRunes is the newline code-point class: LF, CR, vertical
// tab, form feed, NEL, and the Unicode line/paragraph separators.
var slideNewlineRunes = map[rune]bool{
	'\n': true, '\r': true, '\v': true, '\f': true,
	'': true, ' ': true, ' ': true,
}

// isSlideNewlineRune reports membership in slideNewlineRunes.
func isSlideNewlineRune(r rune) bool {
	return slideNewlineRunes[r]
}

// slideBlankRunes is the blank code-point class: space, tab, and the
// Unicode space separators.
var slideBlankRunes = map[rune]bool{
	' ': true, '\t': true, ' ': true, ' ': true,
	' ': true, ' ': true, ' ': true, ' ': true,
	' ': true, ' ': true, ' ': true, ' ': true,
	' ': true, ' ': true, ' ': true, ' ': true,
	' ': true, '　': true,
}

// isSlideBlankRune reports membership in slideBlankRunes.
func isSlideBlankRune(r rune) bool {
	return slideBlankRunes[r]
}

// slidePunctRunes is the full-stop/exclamation/question-mark class.
var slidePunctRunes = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true, '…': true,
}

// isSlidePunctRune reports membership in slidePunctRunes.
func isSlidePunctRune(r rune) bool {
	return slidePunctRunes[r]
}
