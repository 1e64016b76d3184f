package wikeddiff

// Config holds the recognized tuning knobs for Diff. Every field has a
// documented default applied by defaultConfig(); callers set fields via
// the With* functional options rather than constructing Config directly,
// matching the options/Option pattern this package's algorithms grew from.
type Config struct {
	fullDiff       bool
	showBlockMoves bool
	charDiff       bool
	recursiveDiff  bool
	recursionMax   int
	repeatedDiff   bool
	unlinkBlocks   bool
	unlinkMax      int
	blockMinLength int
	coloredBlocks  bool
	noUnicodeSymbols bool
	stripTrailingNewline bool

	clipHeadingLeft       int
	clipParagraphLeftMin  int
	clipParagraphLeftMax  int
	clipLineLeftMin       int
	clipLineLeftMax       int
	clipBlankLeftMin      int
	clipBlankLeftMax      int
	clipCharsLeft         int
	clipLinesLeftMax      int

	clipHeadingRight      int
	clipParagraphRightMin int
	clipParagraphRightMax int
	clipLineRightMin      int
	clipLineRightMax      int
	clipBlankRightMin     int
	clipBlankRightMax     int
	clipCharsRight        int
	clipLinesRightMax     int

	clipSkipChars int
	clipSkipLines int

	debug       bool
	timer       bool
	unitTesting bool
}

// defaultConfig returns the documented defaults from spec §6.
func defaultConfig() *Config {
	return &Config{
		fullDiff:             false,
		showBlockMoves:       true,
		charDiff:             true,
		recursiveDiff:        true,
		recursionMax:         10,
		repeatedDiff:         true,
		unlinkBlocks:         true,
		unlinkMax:            5,
		blockMinLength:       3,
		coloredBlocks:        false,
		noUnicodeSymbols:     false,
		stripTrailingNewline: false,

		clipHeadingLeft:      1500,
		clipParagraphLeftMin: 500,
		clipParagraphLeftMax: 1500,
		clipLineLeftMin:      200,
		clipLineLeftMax:      1000,
		clipBlankLeftMin:     100,
		clipBlankLeftMax:     1000,
		clipCharsLeft:        100,
		clipLinesLeftMax:     10,

		clipHeadingRight:      1500,
		clipParagraphRightMin: 500,
		clipParagraphRightMax: 1500,
		clipLineRightMin:      200,
		clipLineRightMax:      1000,
		clipBlankRightMin:     100,
		clipBlankRightMax:     1000,
		clipCharsRight:        100,
		clipLinesRightMax:     10,

		clipSkipChars: 100,
		clipSkipLines: 3,

		debug:       false,
		timer:       false,
		unitTesting: false,
	}
}

// validate enforces each field's declared domain, returning InvalidConfigError
// for the first violation found.
func (c *Config) validate() error {
	if c.recursionMax < 0 {
		return &InvalidConfigError{Field: "recursionMax", Value: c.recursionMax}
	}
	if c.unlinkMax < 0 {
		return &InvalidConfigError{Field: "unlinkMax", Value: c.unlinkMax}
	}
	if c.blockMinLength < 0 {
		return &InvalidConfigError{Field: "blockMinLength", Value: c.blockMinLength}
	}
	clipFields := map[string]int{
		"clipHeadingLeft": c.clipHeadingLeft, "clipParagraphLeftMin": c.clipParagraphLeftMin,
		"clipParagraphLeftMax": c.clipParagraphLeftMax, "clipLineLeftMin": c.clipLineLeftMin,
		"clipLineLeftMax": c.clipLineLeftMax, "clipBlankLeftMin": c.clipBlankLeftMin,
		"clipBlankLeftMax": c.clipBlankLeftMax, "clipCharsLeft": c.clipCharsLeft,
		"clipLinesLeftMax": c.clipLinesLeftMax, "clipHeadingRight": c.clipHeadingRight,
		"clipParagraphRightMin": c.clipParagraphRightMin, "clipParagraphRightMax": c.clipParagraphRightMax,
		"clipLineRightMin": c.clipLineRightMin, "clipLineRightMax": c.clipLineRightMax,
		"clipBlankRightMin": c.clipBlankRightMin, "clipBlankRightMax": c.clipBlankRightMax,
		"clipCharsRight": c.clipCharsRight, "clipLinesRightMax": c.clipLinesRightMax,
		"clipSkipChars": c.clipSkipChars, "clipSkipLines": c.clipSkipLines,
	}
	for name, v := range clipFields {
		if v < 0 {
			return &InvalidConfigError{Field: name, Value: v}
		}
	}
	return nil
}

// Option configures Diff behavior.
type Option func(*Config)

// WithFullDiff disables clipping (spec §4.7) when full is true.
// Default: false (clipping enabled).
func WithFullDiff(full bool) Option { return func(c *Config) { c.fullDiff = full } }

// WithBlockMoves enables or disables move-mark rendering for moved groups.
// When disabled, moved groups render as plain deletions in their original
// position instead of move marks. Default: true.
func WithBlockMoves(enabled bool) Option { return func(c *Config) { c.showBlockMoves = enabled } }

// WithCharDiff enables or disables the character refiner (spec §4.4).
// Default: true.
func WithCharDiff(enabled bool) Option { return func(c *Config) { c.charDiff = enabled } }

// WithRecursiveDiff enables or disables matcher recursion (spec §4.2) and
// sets its maximum depth. Default: true, 10.
func WithRecursiveDiff(enabled bool, max int) Option {
	return func(c *Config) {
		c.recursiveDiff = enabled
		c.recursionMax = max
	}
}

// WithRepeatedDiff enables or disables the empty-table re-run that catches
// cross-over duplicates (spec §4.2). Default: true.
func WithRepeatedDiff(enabled bool) Option { return func(c *Config) { c.repeatedDiff = enabled } }

// WithUnlinkBlocks enables or disables weak-group unlinking (spec §4.5) and
// sets its cycle cap and the minimum word count defining a "strong" block.
// Default: true, 5, 3.
func WithUnlinkBlocks(enabled bool, max, blockMinLength int) Option {
	return func(c *Config) {
		c.unlinkBlocks = enabled
		c.unlinkMax = max
		c.blockMinLength = blockMinLength
	}
}

// WithColoredBlocks is a renderer hint carried through Config for
// convenience; the core ignores it. Default: false.
func WithColoredBlocks(enabled bool) Option { return func(c *Config) { c.coloredBlocks = enabled } }

// WithNoUnicodeSymbols is a renderer hint carried through Config for
// convenience; the core ignores it. Default: false.
func WithNoUnicodeSymbols(enabled bool) Option {
	return func(c *Config) { c.noUnicodeSymbols = enabled }
}

// WithStripTrailingNewline trims one trailing newline from both inputs
// before tokenization. Default: false.
func WithStripTrailingNewline(enabled bool) Option {
	return func(c *Config) { c.stripTrailingNewline = enabled }
}

// ClipConfig groups the §4.7 clip thresholds for one side (left or right).
type ClipConfig struct {
	HeadingMax      int
	ParagraphMin    int
	ParagraphMax    int
	LineMin         int
	LineMax         int
	BlankMin        int
	BlankMax        int
	Chars           int
	LinesMax        int
}

// WithClipLeft overrides the left-side clip thresholds (spec §4.7).
func WithClipLeft(cc ClipConfig) Option {
	return func(c *Config) {
		c.clipHeadingLeft = cc.HeadingMax
		c.clipParagraphLeftMin = cc.ParagraphMin
		c.clipParagraphLeftMax = cc.ParagraphMax
		c.clipLineLeftMin = cc.LineMin
		c.clipLineLeftMax = cc.LineMax
		c.clipBlankLeftMin = cc.BlankMin
		c.clipBlankLeftMax = cc.BlankMax
		c.clipCharsLeft = cc.Chars
		c.clipLinesLeftMax = cc.LinesMax
	}
}

// WithClipRight overrides the right-side clip thresholds (spec §4.7).
func WithClipRight(cc ClipConfig) Option {
	return func(c *Config) {
		c.clipHeadingRight = cc.HeadingMax
		c.clipParagraphRightMin = cc.ParagraphMin
		c.clipParagraphRightMax = cc.ParagraphMax
		c.clipLineRightMin = cc.LineMin
		c.clipLineRightMax = cc.LineMax
		c.clipBlankRightMin = cc.BlankMin
		c.clipBlankRightMax = cc.BlankMax
		c.clipCharsRight = cc.Chars
		c.clipLinesRightMax = cc.LinesMax
	}
}

// WithClipSkip sets the minimum gap (in characters, and in newline count)
// between a chosen left and right clip position below which clipping is
// skipped entirely for that fragment. Default: 100, 3.
func WithClipSkip(chars, lines int) Option {
	return func(c *Config) {
		c.clipSkipChars = chars
		c.clipSkipLines = lines
	}
}

// WithDebug enables debug bookkeeping. Observational only; never alters
// output. Default: false.
func WithDebug(enabled bool) Option { return func(c *Config) { c.debug = enabled } }

// WithTimer enables per-stage wall-clock timing, returned via Result.Stats.
// Observational only; never alters output. Default: false.
func WithTimer(enabled bool) Option { return func(c *Config) { c.timer = enabled } }

// WithUnitTesting enables the NEW/OLD-view self-check described in spec §7.
// On failure, Result.Err is set to an *InternalInvariantViolationError
// instead of being suppressed. Default: false.
func WithUnitTesting(enabled bool) Option { return func(c *Config) { c.unitTesting = enabled } }
