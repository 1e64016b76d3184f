package wikeddiff

import "testing"

func TestDetectSectionsNoCrossing(t *testing.T) {
	same := []block{
		{oldNumber: 0}, {oldNumber: 1}, {oldNumber: 2},
	}
	secs := detectSections(same)
	if secs != nil {
		t.Fatalf("expected no sections for a monotonically increasing run, got %v", secs)
	}
}

func TestDetectSectionsSingleCrossing(t *testing.T) {
	// NEW order 0,1,2,3 maps to OLD numbers 2,3,0,1 — one crossing, so
	// every block belongs to a single section spanning the whole run.
	same := []block{
		{oldNumber: 2}, {oldNumber: 3}, {oldNumber: 0}, {oldNumber: 1},
	}
	secs := detectSections(same)
	if len(secs) != 1 {
		t.Fatalf("expected exactly one section, got %v", secs)
	}
	if secs[0].start != 0 || secs[0].end != 3 {
		t.Fatalf("expected section to span the whole run, got %+v", secs[0])
	}
}

func TestBuildGroupsConsecutiveOldBlocks(t *testing.T) {
	same := []block{
		{oldBlock: 0}, {oldBlock: 1}, {oldBlock: 5}, {oldBlock: 6}, {oldBlock: 7},
	}
	groups := buildGroups(same)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(groups), groups)
	}
	if groups[0].blockStart != 0 || groups[0].blockEnd != 1 {
		t.Errorf("group 0 = %+v, want {0,1}", groups[0])
	}
	if groups[1].blockStart != 2 || groups[1].blockEnd != 4 {
		t.Errorf("group 1 = %+v, want {2,4}", groups[1])
	}
	for k, b := range same {
		wantGroup := 0
		if k >= 2 {
			wantGroup = 1
		}
		if b.group != wantGroup {
			t.Errorf("same[%d].group = %d, want %d", k, b.group, wantGroup)
		}
	}
}

func TestSelectFixedGroupsPrefersLongerCharPath(t *testing.T) {
	same := []block{
		{oldNumber: 2, section: 0, chars: 1},
		{oldNumber: 0, section: 0, chars: 10},
	}
	groups := []group{
		{blockStart: 0, blockEnd: 0, chars: 1},
		{blockStart: 1, blockEnd: 1, chars: 10},
	}
	selectFixedGroups(same, groups)
	if groups[0].fixed {
		t.Error("shorter group should not be fixed when it conflicts with a longer one")
	}
	if !groups[1].fixed {
		t.Error("longer group should be fixed")
	}
}

func TestAssignMoveMarksUsesFixedNeighborAsReference(t *testing.T) {
	// Group 0 ("="  at oldBlock 0) is fixed; group 1 (moved, oldBlock 1) sits
	// right after it in OLD order, so its reference cascade should pick
	// group 0's block via the "previous block if = and fixed" rule.
	all := []block{
		{kind: blockSame, oldBlock: 0, group: 0, newNumber: 0, oldNumber: 0, fixed: true},
		{kind: blockSame, oldBlock: 1, group: 1, newNumber: 5, oldNumber: 1},
	}
	groups := []group{
		{blockStart: 0, blockEnd: 0, fixed: true},
		{blockStart: 1, blockEnd: 1},
	}
	marks := assignMoveMarks(all, groups)
	if len(marks) != 1 {
		t.Fatalf("expected 1 move mark, got %d", len(marks))
	}
	if groups[1].movedFrom != 0 {
		t.Errorf("movedFrom = %d, want group 0 (the fixed reference block's group)", groups[1].movedFrom)
	}
	if groups[1].refNewNumber != 0 {
		t.Errorf("refNewNumber = %d, want 0 (the reference block's NEW position)", groups[1].refNewNumber)
	}
	if marks[0].newNumber != 0 {
		t.Errorf("mark placed at newNumber %d, want 0", marks[0].newNumber)
	}
}

func TestAssignMoveMarksFallsBackToBeforeAll(t *testing.T) {
	// A single moved group with no other same-block at all: no previous,
	// no next, no nearest-preceding-fixed candidate exists.
	all := []block{
		{kind: blockSame, oldBlock: 0, group: 0, newNumber: 3, oldNumber: 3},
	}
	groups := []group{
		{blockStart: 0, blockEnd: 0},
	}
	marks := assignMoveMarks(all, groups)
	if groups[0].movedFrom != None {
		t.Errorf("movedFrom = %d, want None", groups[0].movedFrom)
	}
	if marks[0].newNumber != -1 {
		t.Errorf("mark placed at newNumber %d, want -1 (before all)", marks[0].newNumber)
	}
}

func TestSelectFixedGroupsTieBreaksFirstInBlockOrder(t *testing.T) {
	// Two groups, same char weight, neither's oldNumber precedes the
	// other's (both start their own increasing subsequence) — the DP picks
	// whichever is found first when scanning for the best, matching spec's
	// "on tie, first in block order wins".
	same := []block{
		{oldNumber: 5, section: 0, chars: 4},
		{oldNumber: 1, section: 0, chars: 4},
	}
	groups := []group{
		{blockStart: 0, blockEnd: 0, chars: 4},
		{blockStart: 1, blockEnd: 1, chars: 4},
	}
	selectFixedGroups(same, groups)
	if !groups[0].fixed {
		t.Error("first group in block order should win the tie")
	}
	if groups[1].fixed {
		t.Error("second group in block order should lose the tie")
	}
}
