package wikeddiff

import (
	"reflect"
	"testing"
)

// flatten drops the bracket/block structure and returns every fragment in
// order, for tests that don't care how clipping split the stream into
// blocks.
func flatten(s *Stream) []Fragment {
	var out []Fragment
	for _, blk := range s.Blocks {
		out = append(out, blk...)
	}
	return out
}

func TestDiffConcreteScenarios(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want []Fragment
	}{
		{
			name: "identical text",
			old:  "hello world",
			new:  "hello world",
			want: []Fragment{{Type: FragSame, Text: "hello world", Color: None}},
		},
		{
			name: "pure insert",
			old:  "",
			new:  "abc",
			want: []Fragment{{Type: FragInsert, Text: "abc", Color: None}},
		},
		{
			name: "pure delete",
			old:  "abc",
			new:  "",
			want: []Fragment{{Type: FragDelete, Text: "abc", Color: None}},
		},
		{
			name: "word substitution",
			old:  "the quick brown fox",
			new:  "the quick red fox",
			want: []Fragment{
				{Type: FragSame, Text: "the quick ", Color: None},
				{Type: FragDelete, Text: "brown", Color: None},
				{Type: FragInsert, Text: "red", Color: None},
				{Type: FragSame, Text: " fox", Color: None},
			},
		},
		{
			name: "word split triggers char refinement",
			old:  "word",
			new:  "w ord",
			want: []Fragment{
				{Type: FragSame, Text: "w", Color: None},
				{Type: FragInsert, Text: " ", Color: None},
				{Type: FragSame, Text: "ord", Color: None},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Diff(tc.old, tc.new, WithUnitTesting(true))
			if err != nil {
				t.Fatalf("Diff returned error: %v", err)
			}
			if res.Err != nil {
				t.Fatalf("self-check failed: %v", res.Err)
			}
			got := flatten(res.Stream)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Diff(%q, %q) fragments =\n%#v\nwant\n%#v", tc.old, tc.new, got, tc.want)
			}
		})
	}
}

func TestDiffIdempotence(t *testing.T) {
	inputs := []string{
		"",
		"a single line",
		"line one\nline two\nline three",
		"paragraph one.\n\nparagraph two has more words in it.",
	}
	for _, x := range inputs {
		res, err := Diff(x, x, WithUnitTesting(true))
		if err != nil {
			t.Fatalf("Diff returned error: %v", err)
		}
		if res.Err != nil {
			t.Fatalf("self-check failed for %q: %v", x, res.Err)
		}
		frags := flatten(res.Stream)
		for _, f := range frags {
			if f.Type != FragSame {
				t.Errorf("Diff(%q, %q) produced non-same fragment %+v", x, x, f)
			}
		}
	}
}

func TestDiffBlockMove(t *testing.T) {
	res, err := Diff("A B C D", "C D A B", WithUnitTesting(true))
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("self-check failed: %v", res.Err)
	}
	frags := flatten(res.Stream)

	var opens, marks int
	colors := map[int]bool{}
	for _, f := range frags {
		switch f.Type {
		case FragMoveOpenLeft, FragMoveOpenRight:
			opens++
		case FragMoveMarkLeft, FragMoveMarkRight:
			marks++
			colors[f.Color] = true
		}
	}
	if opens == 0 {
		t.Error("expected at least one move-open marker")
	}
	if marks == 0 {
		t.Error("expected at least one move-mark fragment")
	}
	if len(colors) == 0 {
		t.Error("expected move fragments to carry a color")
	}

	var newBuf []byte
	for _, f := range frags {
		switch f.Type {
		case FragSame, FragInsert:
			newBuf = append(newBuf, f.Text...)
		}
	}
	if string(newBuf) != "C D A B" {
		t.Errorf("NEW projection = %q, want %q", newBuf, "C D A B")
	}
}

func TestDiffClippingOmitsLongUnchangedSpans(t *testing.T) {
	filler := ""
	for i := 0; i < 200; i++ {
		filler += "unchanged filler word "
	}
	// The unchanged filler sits between a changed prefix and a changed
	// suffix so it is neither the first nor the last fragment, letting
	// the clipper consider both of its edges.
	oldText := "headOld " + filler + "tailOld"
	newText := "headNew " + filler + "tailNew"

	full, err := Diff(oldText, newText, WithFullDiff(true))
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}
	clipped, err := Diff(oldText, newText)
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}

	if len(full.Stream.Blocks) != 1 {
		t.Fatalf("fullDiff stream should stay a single block, got %d", len(full.Stream.Blocks))
	}
	if len(clipped.Stream.Blocks) <= len(full.Stream.Blocks) {
		t.Errorf("expected clipping to split the stream into more than one block, got %d", len(clipped.Stream.Blocks))
	}

	var sawClipMarker bool
	for _, f := range flatten(clipped.Stream) {
		if f.Type == FragClipChars || f.Type == FragClipBlankLeft || f.Type == FragClipBlankRight {
			sawClipMarker = true
		}
	}
	if !sawClipMarker {
		t.Error("expected an omission marker in the clipped stream")
	}
}

func TestDiffRejectsInvalidConfig(t *testing.T) {
	_, err := Diff("a", "b", WithRecursiveDiff(true, -1))
	if err == nil {
		t.Fatal("expected an error for negative recursionMax")
	}
	var cfgErr *InvalidConfigError
	if !asInvalidConfigError(err, &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T: %v", err, err)
	}
}

func asInvalidConfigError(err error, target **InvalidConfigError) bool {
	if e, ok := err.(*InvalidConfigError); ok {
		*target = e
		return true
	}
	return false
}
