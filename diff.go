package wikeddiff

import (
	"strings"
	"time"
)

// Stats holds optional per-stage wall-clock timings, populated only when
// WithTimer is set (spec §5: "observational only; must not alter
// outputs").
type Stats struct {
	Match      time.Duration
	CharRefine time.Duration
	Extract    time.Duration
	Assemble   time.Duration
	Clip       time.Duration
}

// Result is Diff's return value. Stream is the stable contract (spec
// §6); Err is non-nil only when unitTesting is enabled and the self-check
// fails, per spec §7's InternalInvariantViolation.
type Result struct {
	Stream *Stream
	Err    error
	Stats  *Stats
}

// Diff runs the full pipeline described by spec §2 over oldText and
// newText and returns the resulting fragment stream. The only error Diff
// itself returns is *InvalidConfigError, raised before any work starts;
// all other failures are reported through Result.Err.
func Diff(oldText, newText string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	oldText = normalizeLineEndings(oldText)
	newText = normalizeLineEndings(newText)

	var stats *Stats
	if cfg.timer {
		stats = &Stats{}
	}

	newV := newTextVersion(newText, cfg.stripTrailingNewline)
	oldV := newTextVersion(oldText, cfg.stripTrailingNewline)

	runPipeline(cfg, newV, oldV, stats)

	newV.enumerate()
	oldV.enumerate()

	extractStart := now(stats)
	ext := extractBlocks(cfg, newV, oldV)
	tick(stats, extractStart, func(d time.Duration) { stats.Extract = d })

	assembleStart := now(stats)
	frags := assembleFragments(ext, cfg)
	tick(stats, assembleStart, func(d time.Duration) { stats.Assemble = d })

	res := &Result{Stats: stats}
	if cfg.unitTesting {
		if err := checkViews(frags, oldText, newText); err != nil {
			res.Err = err
		}
	}

	clipStart := now(stats)
	res.Stream = clipStream(frags, cfg)
	tick(stats, clipStart, func(d time.Duration) { stats.Clip = d })

	return res, nil
}

// runPipeline drives the matcher and gap slider through spec §4.2's
// refinement schedule (paragraph -> line -> sentence -> chunk -> word),
// sliding once after word-level matching, then — if enabled — running
// the character refiner, a char-level matcher pass, and a second slide.
func runPipeline(cfg *Config, newV, oldV *textVersion, stats *Stats) {
	matchStart := now(stats)
	for _, lvl := range []level{levelParagraph, levelLine, levelSentence, levelChunk, levelWord} {
		newV.splitRefineToLevel(lvl)
		oldV.splitRefineToLevel(lvl)
		(&matcher{cfg: cfg, newV: newV, oldV: oldV, lvl: lvl}).run()
	}
	slideGaps(newV, oldV)

	if cfg.charDiff {
		charStart := now(stats)
		refineCharsToEligibleGaps(newV, oldV)
		(&matcher{cfg: cfg, newV: newV, oldV: oldV, lvl: levelChar}).run()
		slideGaps(newV, oldV)
		tick(stats, charStart, func(d time.Duration) { stats.CharRefine = d })
	}
	tick(stats, matchStart, func(d time.Duration) { stats.Match = d })
}

func now(stats *Stats) time.Time {
	if stats == nil {
		return time.Time{}
	}
	return time.Now()
}

func tick(stats *Stats, start time.Time, set func(time.Duration)) {
	if stats == nil {
		return
	}
	set(time.Since(start))
}

// normalizeLineEndings maps \r\n and bare \r to \n before tokenization,
// per spec §6.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// checkViews implements spec §7/§8's self-check on the pre-clip fragment
// list: the "=" and "+" text must concatenate back to newText, and the
// "=" and "-" text back to oldText. Move-mark fragments quote content
// that already appears inline in its wrapped "=" block, so they are
// excluded from both reconstructions to avoid double-counting.
func checkViews(frags []Fragment, oldText, newText string) error {
	var newBuf, oldBuf strings.Builder
	for _, f := range frags {
		switch f.Type {
		case FragSame:
			newBuf.WriteString(f.Text)
			oldBuf.WriteString(f.Text)
		case FragInsert:
			newBuf.WriteString(f.Text)
		case FragDelete:
			oldBuf.WriteString(f.Text)
		}
	}
	if newBuf.String() != newText {
		return &InternalInvariantViolationError{Stage: "new-view", Detail: "projected NEW view does not reproduce input"}
	}
	if oldBuf.String() != oldText {
		return &InternalInvariantViolationError{Stage: "old-view", Detail: "projected OLD view does not reproduce input"}
	}
	return nil
}
