package wikeddiff

import "testing"

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&InvalidConfigError{Field: "recursionMax", Value: -1}, "wikeddiff: invalid config: recursionMax = -1"},
		{&InternalInvariantViolationError{Stage: "new-view", Detail: "mismatch"}, "wikeddiff: internal invariant violated at new-view: mismatch"},
		{&TokenizerError{Detail: "bad arena"}, "wikeddiff: tokenizer error: bad arena"},
		{&MatcherError{Detail: "asymmetric link"}, "wikeddiff: matcher error: asymmetric link"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
