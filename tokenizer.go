package wikeddiff

import (
	"regexp"
	"strings"

	"github.com/dacharyc/wikeddiff/internal/unicount"
)

// level identifies a tokenization granularity. Refinement always proceeds
// to the next finer level in this order; spec §9 marks this newer schedule
// (with a line level between paragraph and sentence) authoritative over an
// older paragraph->sentence->chunk->word schedule found in the prior art.
type level int

const (
	levelParagraph level = iota
	levelLine
	levelSentence
	levelChunk
	levelWord
	levelChar
)

// next returns the next finer level, or levelChar's own value with ok=false
// once there is nothing finer to refine into.
func (l level) next() (level, bool) {
	if l >= levelChar {
		return levelChar, false
	}
	return l + 1, true
}

// Regex sets for each level. Each pattern identifies the spans that should
// become their own tokens; everything between matches becomes a token too
// (spec §4.1: "Regexes per level capture both separators and separated
// text"). The wiki-chunk atoms (links, templates, tags, URLs) are kept
// indivisible at the chunk level so refinement below it never fragments
// wiki syntax, per spec §4.1 and §1's note that these patterns are
// tokenizer parameters, not part of the core algorithm.
var (
	reParagraph = regexp.MustCompile(`\n[ \t]*\n+`)
	reLine      = regexp.MustCompile(`\n`)
	reSentence  = regexp.MustCompile(`[.!?\x{203D}\x{2049}\x{2048}\x{FE56}\x{FE57}\x{FF01}\x{FF1F}\x{3002}][\"'\)\]\x{201D}\x{2019}]*[ \t\n]+`)
	reChunkAtom = regexp.MustCompile(`\[\[[^\]\n]*\]\]|\{\{[^}\n]*\}\}|\[[^\]\n]*\]|<[a-zA-Z/][^>\n]*>|https?://[^\s\]\}]+|[\p{L}\p{N}_]+`)
	reWord      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

var reWhitespaceOnly = regexp.MustCompile(`^[ \t\n\r]*$`)

// levelPattern returns the splitting regex for a level. levelChar has no
// regex; its splitting is grapheme-based (see splitRefineChars).
func levelPattern(l level) *regexp.Regexp {
	switch l {
	case levelParagraph:
		return reParagraph
	case levelLine:
		return reLine
	case levelSentence:
		return reSentence
	case levelChunk:
		return reChunkAtom
	case levelWord:
		return reWord
	default:
		return nil
	}
}

// splitAtMatches splits text into tokens at matches of re: each match
// becomes its own token, and each span between matches (possibly empty,
// in which case it is omitted) becomes its own token. This single function
// implements every non-char tokenizer level: the distinction between
// "separator" levels (paragraph, line, sentence) and "indivisible atom"
// levels (chunk, word) is just which side of the split the caller cares
// about, not a difference in splitting mechanics.
func splitAtMatches(text string, re *regexp.Regexp) []string {
	if text == "" {
		return nil
	}
	if re == nil {
		return []string{text}
	}
	var tokens []string
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			tokens = append(tokens, text[last:loc[0]])
		}
		if loc[1] > loc[0] {
			tokens = append(tokens, text[loc[0]:loc[1]])
		}
		last = loc[1]
	}
	if last < len(text) {
		tokens = append(tokens, text[last:])
	}
	if tokens == nil {
		tokens = []string{text}
	}
	return tokens
}

// isWhitespaceOnly reports whether s consists entirely of spaces, tabs, and
// newlines — spec §4.2 step 3 forbids whitespace-only tokens from serving
// as unique anchors.
func isWhitespaceOnly(s string) bool {
	return reWhitespaceOnly.MatchString(s)
}

// textVersion is one revision's tokenizer state (spec §3's "text-version
// object"): the raw text, its token arena, and the word/chunk occurrence
// map used by the matcher's uniqueness heuristic.
type textVersion struct {
	text      string
	arena     *arena
	wordCount map[string]int
}

// newTextVersion builds a text version at the coarsest level (paragraph)
// and its word-occurrence map. The active list initially holds one token
// per paragraph-level split of the whole text.
func newTextVersion(text string, stripTrailingNewline bool) *textVersion {
	if stripTrailingNewline {
		text = strings.TrimSuffix(text, "\n")
	}
	tv := &textVersion{
		text:      text,
		arena:     newArena(),
		wordCount: buildWordCount(text),
	}
	for _, s := range splitAtMatches(text, reParagraph) {
		idx := tv.arena.add(s, levelParagraph)
		tv.arena.appendActive(idx)
	}
	return tv
}

// buildWordCount tallies every match of the word and wiki-chunk regexes
// over the whole text into one occurrence map, used by the matcher to
// decide whether a token's constituent words are unique to this revision.
func buildWordCount(text string) map[string]int {
	counts := make(map[string]int)
	for _, m := range reWord.FindAllString(text, -1) {
		counts[m]++
	}
	for _, m := range reChunkAtom.FindAllString(text, -1) {
		counts[m]++
	}
	return counts
}

// splitRefine replaces the still-unlinked token at idx with the sub-tokens
// produced by splitting its text at the next finer level, rewiring
// neighbors via arena.replaceWithRun. The original token remains in the
// arena, tombstoned.
func (tv *textVersion) splitRefine(idx int, lvl level) {
	t := tv.arena.at(idx)
	pieces := splitAtMatches(t.Text, levelPattern(lvl))
	if len(pieces) <= 1 {
		// Nothing finer to produce; re-tag the level so later refinement
		// attempts at subsequent levels are no-ops instead of redoing work.
		t.level = lvl
		return
	}
	run := make([]int, len(pieces))
	for i, p := range pieces {
		run[i] = tv.arena.add(p, lvl)
	}
	tv.arena.replaceWithRun(idx, run)
}

// splitRefineChars replaces the token at idx with one token per grapheme
// cluster of its text (spec §4.4), rewiring neighbors the same way
// splitRefine does. Used only for gaps the character refiner has judged
// eligible; other gaps stay at word granularity.
func (tv *textVersion) splitRefineChars(idx int) {
	t := tv.arena.at(idx)
	pieces := unicount.Graphemes(t.Text)
	if len(pieces) <= 1 {
		t.level = levelChar
		return
	}
	run := make([]int, len(pieces))
	for i, p := range pieces {
		run[i] = tv.arena.add(p, levelChar)
	}
	tv.arena.replaceWithRun(idx, run)
}

// splitRefineToLevel refines every still-unlinked, still-active token at a
// coarser level than lvl up to lvl. It is the tokenizer-side half of the
// refinement schedule driven by diff.go between matcher passes.
func (tv *textVersion) splitRefineToLevel(lvl level) {
	idx := tv.arena.first
	for idx != None {
		next := tv.arena.at(idx).Next
		t := tv.arena.at(idx)
		if t.Link == None && t.level < lvl {
			tv.splitRefine(idx, lvl)
		}
		idx = next
	}
}

// enumerate assigns final Number ordinals to the active list.
func (tv *textVersion) enumerate() {
	tv.arena.enumerate()
}
