package wikeddiff

import "strings"

// refineCharsToEligibleGaps finds every maximal unlinked NEW-side run and,
// when its paired OLD-side run (determined by the surrounding linked
// anchors) is of the "same shape" per spec §4.4, splits every token in
// both runs into grapheme-level tokens so the per-level matcher pass that
// follows can resolve them character by character. Gaps that aren't the
// same shape are left at word granularity.
func refineCharsToEligibleGaps(newV, oldV *textVersion) {
	i := newV.arena.first
	for i != None {
		t := newV.arena.at(i)
		if t.Link != None {
			i = t.Next
			continue
		}
		newRun := collectRun(newV.arena, i)
		last := newRun[len(newRun)-1]
		next := newV.arena.at(last).Next

		oldRun := correspondingOldRun(newV, oldV, newRun)
		if oldRun != nil && isSameShape(newV, oldV, newRun, oldRun) {
			for _, idx := range newRun {
				newV.splitRefineChars(idx)
			}
			for _, idx := range oldRun {
				oldV.splitRefineChars(idx)
			}
		}
		i = next
	}
}

// collectRun returns the maximal run of consecutive unlinked token indices
// starting at start (inclusive), in active-list order.
func collectRun(ar *arena, start int) []int {
	var run []int
	for i := start; i != None && ar.at(i).Link == None; i = ar.at(i).Next {
		run = append(run, i)
	}
	return run
}

// correspondingOldRun returns the OLD-side unlinked run bounded by the
// OLD-side counterparts of newRun's surrounding linked NEW neighbors, or
// nil if that span isn't a clean unlinked run (which would indicate the
// two sides are out of step, e.g. from an earlier partial match).
func correspondingOldRun(newV, oldV *textVersion, newRun []int) []int {
	if len(newRun) == 0 {
		return nil
	}
	first, last := newRun[0], newRun[len(newRun)-1]

	oStart := oldV.arena.first
	if prev := newV.arena.at(first).Prev; prev != None {
		if l := newV.arena.at(prev).Link; l != None {
			oStart = oldV.arena.at(l).Next
		}
	}
	oEndExclusive := None
	if next := newV.arena.at(last).Next; next != None {
		if l := newV.arena.at(next).Link; l != None {
			oEndExclusive = l
		}
	}
	if oStart == None {
		return nil
	}

	var run []int
	for i := oStart; i != oEndExclusive && i != None; i = oldV.arena.at(i).Next {
		if oldV.arena.at(i).Link != None {
			return nil
		}
		run = append(run, i)
	}
	return run
}

// isSameShape implements spec §4.4's acceptance rule: equal token counts
// with every pair acceptable, or a {1,3}/{3,1} word-split-or-merge shape.
func isSameShape(newV, oldV *textVersion, newRun, oldRun []int) bool {
	n, o := len(newRun), len(oldRun)
	if n == o {
		for i := range newRun {
			a := newV.arena.at(newRun[i]).Text
			b := oldV.arena.at(oldRun[i]).Text
			if !acceptablePair(a, b) {
				return false
			}
		}
		return true
	}
	if (n == 1 && o == 3) || (n == 3 && o == 1) {
		var single string
		var triple [3]string
		if n == 1 {
			single = newV.arena.at(newRun[0]).Text
			triple[0], triple[1], triple[2] = oldV.arena.at(oldRun[0]).Text, oldV.arena.at(oldRun[1]).Text, oldV.arena.at(oldRun[2]).Text
		} else {
			single = oldV.arena.at(oldRun[0]).Text
			triple[0], triple[1], triple[2] = newV.arena.at(newRun[0]).Text, newV.arena.at(newRun[1]).Text, newV.arena.at(newRun[2]).Text
		}
		return strings.HasPrefix(single, triple[0]) && strings.HasSuffix(single, triple[2])
	}
	return false
}

// acceptablePair reports whether two equal-position tokens in a same-count
// gap are close enough to justify character refinement: equal; an internal
// insert/delete (equal prefix + equal suffix covering the shorter token); a
// flanking insert/delete (the shorter is a contiguous substring of the
// longer); or at least 50% byte identity at equal length.
func acceptablePair(a, b string) bool {
	if a == b {
		return true
	}
	shorter, longer := a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}
	p := commonPrefixLen(a, b)
	rem := min(len(a), len(b)) - p
	s := 0
	if rem > 0 {
		s = commonSuffixLen(a[p:], b[p:])
	}
	if p+s >= len(shorter) {
		return true
	}
	if strings.Contains(longer, shorter) {
		return true
	}
	if len(a) == len(b) {
		same := 0
		for i := 0; i < len(a); i++ {
			if a[i] == b[i] {
				same++
			}
		}
		if len(a) > 0 && float64(same)/float64(len(a)) >= 0.5 {
			return true
		}
	}
	return false
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
