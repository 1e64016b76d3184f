package wikeddiffhtml

import (
	"strings"
	"testing"

	"github.com/dacharyc/wikeddiff"
)

func TestRenderEscapesAndTagsFragments(t *testing.T) {
	stream := &wikeddiff.Stream{
		Blocks: [][]wikeddiff.Fragment{
			{
				{Type: wikeddiff.FragSame, Text: "a < b", Color: wikeddiff.None},
				{Type: wikeddiff.FragDelete, Text: "old", Color: wikeddiff.None},
				{Type: wikeddiff.FragInsert, Text: "new", Color: wikeddiff.None},
			},
		},
	}
	out := Render(stream, RenderConfig{})

	if !strings.Contains(out, "a &lt; b") {
		t.Errorf("expected escaped same-text, got %s", out)
	}
	if !strings.Contains(out, `class="wikeddiff-delete"`) {
		t.Errorf("expected default delete class, got %s", out)
	}
	if !strings.Contains(out, `class="wikeddiff-insert"`) {
		t.Errorf("expected default insert class, got %s", out)
	}
}

func TestRenderCustomClasses(t *testing.T) {
	stream := &wikeddiff.Stream{
		Blocks: [][]wikeddiff.Fragment{
			{{Type: wikeddiff.FragInsert, Text: "x", Color: wikeddiff.None}},
		},
	}
	out := Render(stream, RenderConfig{InsertClass: "my-insert"})
	if !strings.Contains(out, `class="my-insert"`) {
		t.Errorf("expected custom insert class, got %s", out)
	}
}

func TestRenderMoveColorAttribute(t *testing.T) {
	stream := &wikeddiff.Stream{
		Blocks: [][]wikeddiff.Fragment{
			{{Type: wikeddiff.FragMoveMarkRight, Text: "moved", Color: 3}},
		},
	}
	out := Render(stream, RenderConfig{})
	if !strings.Contains(out, `data-color="3"`) {
		t.Errorf("expected data-color attribute, got %s", out)
	}
}
