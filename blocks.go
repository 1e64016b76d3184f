package wikeddiff

import (
	"sort"

	"github.com/dacharyc/wikeddiff/internal/unicount"
)

// blockKind identifies a block's role in the final block/group model.
type blockKind int

const (
	blockSame blockKind = iota // "="
	blockDelete                // "-"
	blockInsert                // "+"
	blockMove                  // "|" move-mark placeholder
)

// block is spec §3's "Block": a maximal run of like-typed tokens.
type block struct {
	kind blockKind

	oldFirst int // arena index of first OLD-side token; None for "+" blocks
	newFirst int // arena index of first NEW-side token; None for "-" blocks

	count int
	words int
	chars int

	oldNumber int
	newNumber int
	unique    bool

	section int
	group   int
	fixed   bool
	moved   bool

	oldBlock int // this block's index in OLD-order
	newBlock int // this block's index in NEW-order

	text string

	color int // assigned to move-mark blocks and their moved groups
}

// group is spec §3's "Group": a maximal run of "=" blocks consecutive in
// OLD order.
type group struct {
	blockStart, blockEnd int // inclusive range of indices into the section's block slice

	chars, words, maxWords int
	unique                 bool
	fixed                  bool

	// movedFrom is the group index of this group's reference block, chosen
	// by the §4.5 placement cascade (referenceForGroup); None if no
	// reference exists.
	movedFrom int
	// refNewNumber is the NEW-order position the reference block (and
	// hence this group's "|" mark) was placed at; -1 for "before all"
	// when no reference exists.
	refNewNumber int

	color int
}

// section is spec §3's "Section": a range of blocks closed under
// NEW-to-OLD crossings.
type section struct {
	start, end int // inclusive range of indices into the NEW-ordered same-block slice
}

// extraction holds the full block/section/group model produced by
// extractBlocks, ready for fragment assembly.
type extraction struct {
	blocks []block // final merged, sorted "=" "-" "+" "|" blocks
	groups []group
}

// extractBlocks runs spec §4.5 end to end: same-block detection, section
// detection, group formation, fixed-group selection by weighted LIS,
// optional unlinking with re-detection, deletion/insertion block
// placement, and move-mark insertion.
func extractBlocks(cfg *Config, newV, oldV *textVersion) *extraction {
	var same []block
	var groups []group

	same, groups = detectSameBlocksAndGroups(newV, oldV)
	selectFixedGroups(same, groups)

	if cfg.unlinkBlocks {
		for cycle := 0; cycle < cfg.unlinkMax; cycle++ {
			if !anyGroupAtLeast(groups, cfg.blockMinLength) {
				break
			}
			changed := unlinkWeakGroups(newV, oldV, same, groups, cfg.blockMinLength)
			if !changed {
				break
			}
			slideGaps(newV, oldV)
			same, groups = detectSameBlocksAndGroups(newV, oldV)
			selectFixedGroups(same, groups)
		}
	}

	all := make([]block, len(same))
	copy(all, same)

	dels := buildDeleteBlocks(newV, oldV)
	ins := buildInsertBlocks(newV, oldV)

	all = append(all, dels...)
	all = append(all, ins...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].newNumber != all[j].newNumber {
			return all[i].newNumber < all[j].newNumber
		}
		return all[i].oldNumber < all[j].oldNumber
	})

	groups = reseatGroups(all, groups)
	assignInsertGroups(all, groups)
	moves := assignMoveMarks(all, groups)
	all = append(all, moves...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].newNumber != all[j].newNumber {
			return all[i].newNumber < all[j].newNumber
		}
		return all[i].oldNumber < all[j].oldNumber
	})

	return &extraction{blocks: all, groups: groups}
}

// detectSameBlocksAndGroups walks OLD to find maximal runs of linked
// tokens whose Link chain moves monotonically forward in NEW (each such
// run is one "=" block), sorts the result into NEW order, and groups
// consecutive-oldBlock runs.
func detectSameBlocksAndGroups(newV, oldV *textVersion) ([]block, []group) {
	same := buildSameBlocks(newV, oldV)
	for i := range same {
		same[i].oldBlock = i
	}
	sort.SliceStable(same, func(i, j int) bool { return same[i].newNumber < same[j].newNumber })
	for i := range same {
		same[i].newBlock = i
	}

	secs := detectSections(same)
	for si, s := range secs {
		for i := s.start; i <= s.end; i++ {
			same[i].section = si
		}
	}

	groups := buildGroups(same)
	assignGroupSections(same, groups, secs)
	return same, groups
}

// buildSameBlocks walks OLD's active list; for each run of linked tokens
// whose Link targets advance monotonically in NEW, it emits one "=" block.
func buildSameBlocks(newV, oldV *textVersion) []block {
	var blocks []block
	i := oldV.arena.first
	for i != None {
		t := oldV.arena.at(i)
		if t.Link == None {
			i = t.Next
			continue
		}
		start := i
		lastNew := t.Link
		j := oldV.arena.at(i).Next
		for j != None {
			tj := oldV.arena.at(j)
			if tj.Link == None {
				break
			}
			if newV.arena.at(lastNew).Next != tj.Link {
				break
			}
			lastNew = tj.Link
			i = j
			j = oldV.arena.at(j).Next
		}
		blocks = append(blocks, makeSameBlock(newV, oldV, start, i))
		i = j
	}
	return blocks
}

// makeSameBlock aggregates an OLD-side token run [start..end] (inclusive,
// walked via Next) into one "=" block.
func makeSameBlock(newV, oldV *textVersion, start, end int) block {
	b := block{kind: blockSame, oldFirst: start, fixed: false, section: None, group: None}
	b.newFirst = oldV.arena.at(start).Link
	b.oldNumber = oldV.arena.at(start).Number
	b.newNumber = newV.arena.at(b.newFirst).Number

	var sb []byte
	for i := start; ; i = oldV.arena.at(i).Next {
		t := oldV.arena.at(i)
		sb = append(sb, t.Text...)
		b.count++
		b.words += len(reWord.FindAllString(t.Text, -1))
		if t.Unique {
			b.unique = true
		}
		if i == end {
			break
		}
	}
	b.text = string(sb)
	b.chars = unicount.CodepointLen(b.text)
	return b
}

// detectSections implements spec §4.5's single left-to-right scan: a
// running max of oldNumber is tracked; whenever a later block's oldNumber
// falls behind that running max, the section open at the scan's current
// position is extended to include it, and its crossing threshold is raised
// to the running max. A block reached without having extended the current
// section starts a fresh one.
func detectSections(same []block) []section {
	n := len(same)
	if n == 0 {
		return nil
	}
	var secs []section
	start, end := 0, 0
	oldMax := same[0].oldNumber
	sectionOldMax := oldMax
	for j := 1; j < n; j++ {
		oj := same[j].oldNumber
		if oj < sectionOldMax {
			end = j
			sectionOldMax = oldMax
		}
		if oj > oldMax {
			oldMax = oj
		}
		if j > end {
			if end > start {
				secs = append(secs, section{start, end})
			}
			start, end = j, j
			sectionOldMax = oj
			oldMax = oj
		}
	}
	if end > start {
		secs = append(secs, section{start, end})
	}
	return secs
}

// buildGroups forms maximal runs of blocks (in NEW order, i.e. same's own
// order after sorting) whose oldBlock ordinals are consecutive.
func buildGroups(same []block) []group {
	var groups []group
	i := 0
	for i < len(same) {
		start := i
		j := i + 1
		for j < len(same) && same[j].oldBlock == same[j-1].oldBlock+1 {
			j++
		}
		end := j - 1
		g := group{blockStart: start, blockEnd: end}
		for k := start; k <= end; k++ {
			g.chars += same[k].chars
			g.words += same[k].words
			if same[k].words > g.maxWords {
				g.maxWords = same[k].words
			}
			if same[k].unique {
				g.unique = true
			}
			same[k].group = len(groups)
		}
		groups = append(groups, g)
		i = end + 1
	}
	return groups
}

// assignGroupSections records, for blocks already tagged with a section
// index by detectSections, which section(s) each group overlaps. A group
// with any member outside a section but itself wholly outside every
// section is fixed immediately (spec: "Groups outside any section are
// marked fixed immediately"); one with mixed membership inherits the
// section of its first block, which is the common case since group ranges
// rarely straddle a section boundary.
func assignGroupSections(same []block, groups []group, secs []section) {
	for gi := range groups {
		allOutside := true
		for k := groups[gi].blockStart; k <= groups[gi].blockEnd; k++ {
			if same[k].section != None {
				allOutside = false
			}
		}
		if allOutside {
			groups[gi].fixed = true
			for k := groups[gi].blockStart; k <= groups[gi].blockEnd; k++ {
				same[k].fixed = true
			}
		}
	}
}

// anyGroupAtLeast reports whether any group's maxWords meets blockMinLength.
func anyGroupAtLeast(groups []group, blockMinLength int) bool {
	for _, g := range groups {
		if g.maxWords >= blockMinLength {
			return true
		}
	}
	return false
}

// selectFixedGroups implements spec §4.5's per-section fixed selection: the
// longest (by total character length) increasing-in-OLD-order subsequence
// of each section's groups is marked fixed; the rest are marked moved.
// Groups already marked fixed by assignGroupSections (because they sit
// outside every section) are left untouched.
func selectFixedGroups(same []block, groups []group) {
	bySection := make(map[int][]int)
	for gi, g := range groups {
		if g.fixed {
			continue
		}
		sec := same[g.blockStart].section
		if sec == None {
			groups[gi].fixed = true
			continue
		}
		bySection[sec] = append(bySection[sec], gi)
	}

	for _, gis := range bySection {
		n := len(gis)
		if n == 0 {
			continue
		}
		key := make([]int, n)   // representative oldNumber per group, for ordering
		weight := make([]int, n)
		for i, gi := range gis {
			key[i] = same[groups[gi].blockStart].oldNumber
			weight[i] = groups[gi].chars
		}
		dp := make([]int, n)
		parent := make([]int, n)
		for i := 0; i < n; i++ {
			dp[i] = weight[i]
			parent[i] = -1
			for j := 0; j < i; j++ {
				if key[j] < key[i] && dp[j]+weight[i] > dp[i] {
					dp[i] = dp[j] + weight[i]
					parent[i] = j
				}
			}
		}
		best := 0
		for i := 1; i < n; i++ {
			if dp[i] > dp[best] {
				best = i
			}
		}
		fixedSet := make(map[int]bool)
		for cur := best; cur != -1; cur = parent[cur] {
			fixedSet[gis[cur]] = true
		}
		for _, gi := range gis {
			if fixedSet[gi] {
				groups[gi].fixed = true
				for k := groups[gi].blockStart; k <= groups[gi].blockEnd; k++ {
					same[k].fixed = true
				}
			} else {
				groups[gi].fixed = false
			}
		}
	}
}

// unlinkWeakGroups implements spec §4.5's unlinking step: a group whose
// maxWords falls short of blockMinLength and holds no unique block has
// every one of its member "=" blocks unlinked outright; one that does
// hold a unique block only has its single-word, non-unique boundary
// blocks unlinked, since the unique interior can't be a false match.
// Reports whether it changed anything, so the caller can stop early.
func unlinkWeakGroups(newV, oldV *textVersion, same []block, groups []group, blockMinLength int) bool {
	changed := false
	for gi := range groups {
		g := groups[gi]
		if g.maxWords >= blockMinLength {
			continue
		}
		if !g.unique {
			for k := g.blockStart; k <= g.blockEnd; k++ {
				if unlinkSameBlock(newV, oldV, &same[k]) {
					changed = true
				}
			}
			continue
		}
		if same[g.blockStart].words == 1 && !same[g.blockStart].unique {
			if unlinkSameBlock(newV, oldV, &same[g.blockStart]) {
				changed = true
			}
		}
		if g.blockEnd != g.blockStart && same[g.blockEnd].words == 1 && !same[g.blockEnd].unique {
			if unlinkSameBlock(newV, oldV, &same[g.blockEnd]) {
				changed = true
			}
		}
	}
	return changed
}

// unlinkSameBlock walks an "=" block's OLD-side token run and unlinks
// every pair in it, turning the block back into ordinary unmatched
// content for the next detection pass.
func unlinkSameBlock(newV, oldV *textVersion, b *block) bool {
	if b.kind != blockSame {
		return false
	}
	changed := false
	i := b.oldFirst
	for n := 0; n < b.count && i != None; n++ {
		t := oldV.arena.at(i)
		next := t.Next
		if t.Link != None {
			unlinkPair(oldV.arena, newV.arena, i, t.Link)
			changed = true
		}
		i = next
	}
	return changed
}

// buildDeleteBlocks walks OLD's active list for maximal unlinked runs,
// emitting one "-" block per run. Each block's newNumber is taken from
// whichever of its two immediate neighbors is linked (both are, if
// present, since the run is maximal); with no linked neighbor on either
// side the whole text was deleted and there is nothing to place it next
// to, so newNumber is -1 per spec §4.5's no-fixed-reference case.
func buildDeleteBlocks(newV, oldV *textVersion) []block {
	var blocks []block
	i := oldV.arena.first
	for i != None {
		t := oldV.arena.at(i)
		if t.Link != None {
			i = t.Next
			continue
		}
		start := i
		var sb []byte
		count, words := 0, 0
		for i != None && oldV.arena.at(i).Link == None {
			tok := oldV.arena.at(i)
			sb = append(sb, tok.Text...)
			count++
			words += len(reWord.FindAllString(tok.Text, -1))
			i = tok.Next
		}
		b := block{kind: blockDelete, oldFirst: start, newFirst: None, count: count, words: words, section: None, group: None}
		b.oldNumber = oldV.arena.at(start).Number
		b.text = string(sb)
		b.chars = unicount.CodepointLen(b.text)
		b.newNumber = placementNewNumber(newV, oldV, start, i)
		blocks = append(blocks, b)
	}
	return blocks
}

// placementNewNumber anchors a deletion run to its NEW-side position via
// whichever neighbor (previous, else next) is linked.
func placementNewNumber(newV, oldV *textVersion, runStart, afterRun int) int {
	if prev := oldV.arena.at(runStart).Prev; prev != None {
		if pl := oldV.arena.at(prev).Link; pl != None {
			return newV.arena.at(pl).Number
		}
	}
	if afterRun != None {
		if nl := oldV.arena.at(afterRun).Link; nl != None {
			return newV.arena.at(nl).Number
		}
	}
	return -1
}

// buildInsertBlocks mirrors buildDeleteBlocks over NEW's active list,
// emitting "+" blocks anchored to an OLD-side position the same way.
func buildInsertBlocks(newV, oldV *textVersion) []block {
	var blocks []block
	i := newV.arena.first
	for i != None {
		t := newV.arena.at(i)
		if t.Link != None {
			i = t.Next
			continue
		}
		start := i
		var sb []byte
		count, words := 0, 0
		for i != None && newV.arena.at(i).Link == None {
			tok := newV.arena.at(i)
			sb = append(sb, tok.Text...)
			count++
			words += len(reWord.FindAllString(tok.Text, -1))
			i = tok.Next
		}
		b := block{kind: blockInsert, oldFirst: None, newFirst: start, count: count, words: words, section: None, group: None}
		b.newNumber = newV.arena.at(start).Number
		b.text = string(sb)
		b.chars = unicount.CodepointLen(b.text)
		b.oldNumber = placementOldNumber(newV, oldV, start, i)
		blocks = append(blocks, b)
	}
	return blocks
}

// placementOldNumber is placementNewNumber's mirror for "+" blocks.
func placementOldNumber(newV, oldV *textVersion, runStart, afterRun int) int {
	if prev := newV.arena.at(runStart).Prev; prev != None {
		if pl := newV.arena.at(prev).Link; pl != None {
			return oldV.arena.at(pl).Number
		}
	}
	if afterRun != None {
		if nl := newV.arena.at(afterRun).Link; nl != None {
			return oldV.arena.at(nl).Number
		}
	}
	return -1
}

// reseatGroups recomputes each group's blockStart/blockEnd as indices
// into the final merged-and-sorted block slice, using the group tag
// buildGroups stamped onto each "=" block (which survives the copy into
// that slice untouched) rather than re-deriving membership from scratch.
func reseatGroups(all []block, groups []group) []group {
	starts := make([]int, len(groups))
	ends := make([]int, len(groups))
	for i := range starts {
		starts[i], ends[i] = -1, -1
	}
	for idx, b := range all {
		if b.kind != blockSame || b.group == None {
			continue
		}
		if starts[b.group] == -1 || idx < starts[b.group] {
			starts[b.group] = idx
		}
		if ends[b.group] == -1 || idx > ends[b.group] {
			ends[b.group] = idx
		}
	}
	for gi := range groups {
		if starts[gi] != -1 {
			groups[gi].blockStart = starts[gi]
			groups[gi].blockEnd = ends[gi]
		}
	}
	return groups
}

// assignInsertGroups implements spec §4.5's rule that an insertion
// falling inside an existing group's NEW-number range inherits that
// group, so it renders and colors alongside the group it was interleaved
// into rather than as an unrelated standalone insert.
func assignInsertGroups(all []block, groups []group) {
	for i := range all {
		if all[i].kind != blockInsert {
			continue
		}
		for gi, g := range groups {
			lo := all[g.blockStart].newNumber
			hi := all[g.blockEnd].newNumber
			if all[i].newNumber >= lo && all[i].newNumber <= hi {
				all[i].group = gi
				break
			}
		}
	}
}

// oldOrderRange is a group's span over the OLD-ordered same-block view,
// expressed as ordinals into sameIdx (see assignMoveMarks).
type oldOrderRange struct{ min, max int }

// assignMoveMarks creates one "|" mark block per moved (non-fixed) group
// and assigns every group a color shared between the mark and the moved
// content so a renderer can link them visually. Per spec §4.5, the mark
// isn't placed at the group's own position: it's placed at a reference
// "=" block chosen by referenceForGroup on the OLD-ordered view, and
// movedFrom records that reference block's group (None if no reference
// block exists anywhere before it).
func assignMoveMarks(all []block, groups []group) []block {
	var sameIdx []int
	for idx, b := range all {
		if b.kind == blockSame {
			sameIdx = append(sameIdx, idx)
		}
	}
	sort.Slice(sameIdx, func(i, j int) bool { return all[sameIdx[i]].oldBlock < all[sameIdx[j]].oldBlock })

	ranges := make(map[int]oldOrderRange)
	for ord, idx := range sameIdx {
		b := all[idx]
		r, ok := ranges[b.group]
		if !ok {
			ranges[b.group] = oldOrderRange{ord, ord}
			continue
		}
		if ord < r.min {
			r.min = ord
		}
		if ord > r.max {
			r.max = ord
		}
		ranges[b.group] = r
	}

	var marks []block
	color := 0
	for gi := range groups {
		g := &groups[gi]
		if g.fixed {
			continue
		}
		g.color = color
		for k := g.blockStart; k <= g.blockEnd; k++ {
			all[k].moved = true
			all[k].color = g.color
		}

		r := ranges[gi]
		refIdx := referenceForGroup(all, sameIdx, ranges, r.min, r.max)
		if refIdx == None {
			g.movedFrom = None
			g.refNewNumber = -1
		} else {
			g.movedFrom = all[refIdx].group
			g.refNewNumber = all[refIdx].newNumber
		}

		marks = append(marks, block{
			kind:      blockMove,
			newNumber: g.refNewNumber,
			oldNumber: all[g.blockStart].oldNumber,
			color:     g.color,
			section:   None,
			group:     gi,
		})
		color++
	}
	return marks
}

// referenceForGroup implements spec §4.5's placement cascade on the
// OLD-ordered view (sameIdx, indexed by OLD ordinal via minOld/maxOld):
// the previous same-block if it's fixed; else the next if it's fixed;
// else the previous if it isn't the last member of its own group; else
// the next if it isn't the first member of its own group; else the
// nearest preceding fixed same-block. None ("before all") if none apply.
func referenceForGroup(all []block, sameIdx []int, ranges map[int]oldOrderRange, minOld, maxOld int) int {
	prevOK := minOld > 0
	nextOK := maxOld < len(sameIdx)-1
	prevIdx, nextIdx := None, None
	if prevOK {
		prevIdx = sameIdx[minOld-1]
	}
	if nextOK {
		nextIdx = sameIdx[maxOld+1]
	}
	if prevOK && all[prevIdx].fixed {
		return prevIdx
	}
	if nextOK && all[nextIdx].fixed {
		return nextIdx
	}
	if prevOK {
		if pr := ranges[all[prevIdx].group]; minOld-1 != pr.max {
			return prevIdx
		}
	}
	if nextOK {
		if nr := ranges[all[nextIdx].group]; maxOld+1 != nr.min {
			return nextIdx
		}
	}
	for k := minOld - 1; k >= 0; k-- {
		idx := sameIdx[k]
		if all[idx].fixed {
			return idx
		}
	}
	return None
}
