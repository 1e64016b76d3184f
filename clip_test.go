package wikeddiff

import "testing"

func TestSliceCPMultibyte(t *testing.T) {
	s := "café résumé"
	if got := sliceCP(s, 0, 4); got != "café" {
		t.Errorf("sliceCP(0,4) = %q, want %q", got, "café")
	}
	if got := sliceCP(s, 5, 11); got != "résumé" {
		t.Errorf("sliceCP(5,11) = %q, want %q", got, "résumé")
	}
}

func TestClipFragmentPassesThroughShortText(t *testing.T) {
	cfg := defaultConfig()
	f := Fragment{Type: FragSame, Text: "short", Color: None}
	head, tail, split := clipFragment(f, cfg, false, false)
	if split || tail != nil {
		t.Fatalf("short fragment should not split")
	}
	if len(head) != 1 || head[0] != f {
		t.Fatalf("short fragment should pass through unchanged, got %+v", head)
	}
}

func TestClipFragmentIgnoresColoredFragments(t *testing.T) {
	cfg := defaultConfig()
	longText := ""
	for i := 0; i < 500; i++ {
		longText += "x"
	}
	f := Fragment{Type: FragSame, Text: longText, Color: 0}
	head, _, split := clipFragment(f, cfg, false, false)
	if split {
		t.Fatalf("colored fragment should never be clipped")
	}
	if len(head) != 1 || head[0].Text != longText {
		t.Fatalf("colored fragment should pass through unchanged")
	}
}

func TestClipFragmentAtListBoundarySkipsThatSide(t *testing.T) {
	cfg := defaultConfig()
	longText := ""
	for i := 0; i < 2000; i++ {
		longText += "word "
	}
	f := Fragment{Type: FragSame, Text: longText, Color: None}

	// As the first fragment, only the right side may clip.
	head, tail, split := clipFragment(f, cfg, true, false)
	if split {
		t.Fatalf("first fragment can only clip on its right edge, so it should never split into two blocks")
	}
	if tail != nil {
		t.Fatalf("unexpected tail for a non-splitting clip")
	}
	if len(head) == 1 && head[0] == f {
		t.Fatalf("expected the right edge to clip")
	}
}

func TestNthNewlinePos(t *testing.T) {
	text := "a\nb\nc\nd"
	if p, ok := nthNewlinePos(text, 2, false); !ok || p != 4 {
		t.Errorf("nthNewlinePos(2, left) = (%d, %v), want (4, true)", p, ok)
	}
	if p, ok := nthNewlinePos(text, 2, true); !ok || p != 2 {
		t.Errorf("nthNewlinePos(2, right) = (%d, %v), want (2, true)", p, ok)
	}
	if _, ok := nthNewlinePos(text, 10, false); ok {
		t.Error("expected no position when text has fewer newlines than requested")
	}
}

func TestFindLeftClipFallsBackToLinesMaxCap(t *testing.T) {
	cfg := defaultConfig()
	cfg.clipHeadingLeft = 0
	cfg.clipParagraphLeftMax = 0
	cfg.clipLineLeftMax = 0
	cfg.clipBlankLeftMax = 0
	cfg.clipCharsLeft = 0
	cfg.clipLinesLeftMax = 2

	text := "one\ntwo\nthree\nfour"
	pos, marker, ok := findLeftClip(text, cfg)
	if !ok {
		t.Fatal("expected the max-lines cap to produce a clip position")
	}
	if marker != noMarker {
		t.Errorf("max-lines clip should carry no omission marker, got %v", marker)
	}
	if pos != 8 {
		t.Errorf("pos = %d, want 8 (just past the 2nd newline)", pos)
	}
}

func TestClipCandidatePositionsWindow(t *testing.T) {
	text := "a\n\nb\n\nc\n\nd"
	positions := clipCandidatePositions(text, reParagraph, 0, 3, false)
	if len(positions) == 0 {
		t.Fatal("expected at least one candidate within the window")
	}
	for _, p := range positions {
		if p < 0 || p > 3 {
			t.Errorf("candidate %d falls outside the [0,3] window", p)
		}
	}
}
