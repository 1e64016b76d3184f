package wikeddiff

import "fmt"

// InvalidConfigError reports a Config field outside its declared domain.
// Diff returns it immediately, before any tokenization happens.
type InvalidConfigError struct {
	Field string
	Value any
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("wikeddiff: invalid config: %s = %v", e.Field, e.Value)
}

// InternalInvariantViolationError reports that the unit-test self-check
// (stripping all markup from a projected view must reproduce the input it
// was projected from) failed. It indicates a bug in the engine, not in the
// caller's input, and is only ever surfaced when Config.UnitTesting is set;
// otherwise Diff suppresses it to keep making forward progress.
type InternalInvariantViolationError struct {
	Stage string
	Detail string
}

func (e *InternalInvariantViolationError) Error() string {
	return fmt.Sprintf("wikeddiff: internal invariant violated at %s: %s", e.Stage, e.Detail)
}

// TokenizerError reports that the tokenizer's arena or linked-list
// invariants failed. Reserved: should not occur for well-formed input.
type TokenizerError struct {
	Detail string
}

func (e *TokenizerError) Error() string {
	return fmt.Sprintf("wikeddiff: tokenizer error: %s", e.Detail)
}

// MatcherError reports that the matcher's link-symmetry invariant failed.
// Reserved: should not occur for well-formed input.
type MatcherError struct {
	Detail string
}

func (e *MatcherError) Error() string {
	return fmt.Sprintf("wikeddiff: matcher error: %s", e.Detail)
}
