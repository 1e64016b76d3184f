package wikeddiff

// FragmentType tags a unit in the fragment stream (spec §6's grammar).
type FragmentType int

const (
	FragSame          FragmentType = iota // "="
	FragDelete                            // "-"
	FragInsert                            // "+"
	FragMoveOpenLeft                      // "(<"
	FragMoveOpenRight                     // "(>"
	FragMoveClose                         // ")"
	FragMoveMarkLeft                      // "<"
	FragMoveMarkRight                     // ">"
	FragClipChars                         // "~"
	FragClipBlankLeft                     // " ~"
	FragClipBlankRight                    // "~ "
)

// Fragment is one unit of the output stream: a type, its text (possibly
// empty for structural markers), and a color (None unless it belongs to
// a moved group).
type Fragment struct {
	Type  FragmentType
	Text  string
	Color int
}

// assembleFragments walks the extracted block/group model in NEW order
// and produces the flat fragment list described by spec §4.6, ahead of
// clipping. Moved groups are wrapped in open/close markers when
// cfg.showBlockMoves is set; otherwise their move-mark blocks degrade to
// plain deletions and no wrapper is emitted, per spec §6's showBlockMoves
// option.
func assembleFragments(ext *extraction, cfg *Config) []Fragment {
	all := ext.blocks
	groups := ext.groups

	var frags []Fragment
	for i, b := range all {
		if b.kind == blockSame && cfg.showBlockMoves && b.group != None && !groups[b.group].fixed && i == groups[b.group].blockStart {
			frags = append(frags, Fragment{Type: moveDirection(all, groups[b.group]), Color: groups[b.group].color})
		}

		switch b.kind {
		case blockSame:
			frags = append(frags, Fragment{Type: FragSame, Text: b.text, Color: None})
		case blockDelete:
			frags = append(frags, Fragment{Type: FragDelete, Text: b.text, Color: None})
		case blockInsert:
			frags = append(frags, Fragment{Type: FragInsert, Text: b.text, Color: None})
		case blockMove:
			g := groups[b.group]
			text := movedGroupText(all, g)
			if cfg.showBlockMoves {
				frags = append(frags, Fragment{Type: markType(moveDirection(all, g)), Text: text, Color: g.color})
			} else {
				frags = append(frags, Fragment{Type: FragDelete, Text: text, Color: None})
			}
		}

		if b.kind == blockSame && cfg.showBlockMoves && b.group != None && !groups[b.group].fixed && i == groups[b.group].blockEnd {
			frags = append(frags, Fragment{Type: FragMoveClose, Color: groups[b.group].color})
		}
	}
	return mergeAdjacentFragments(frags)
}

// moveDirection picks "(<" vs "(>" for a moved group's opener by
// comparing its reference block's NEW position (refNewNumber, chosen by
// the §4.5 placement cascade) against the group's own NEW-order content
// start: a group whose reference sits before it opens with "(>" (content
// came from after the mark), one whose reference sits after opens with
// "(<".
func moveDirection(all []block, g group) FragmentType {
	if g.refNewNumber < all[g.blockStart].newNumber {
		return FragMoveOpenRight
	}
	return FragMoveOpenLeft
}

// markType maps an open-bracket direction to its matching mark-glyph
// direction.
func markType(open FragmentType) FragmentType {
	if open == FragMoveOpenRight {
		return FragMoveMarkRight
	}
	return FragMoveMarkLeft
}

// movedGroupText concatenates the text of a group's member "=" blocks —
// the content a move-mark fragment quotes at its reference point.
func movedGroupText(all []block, g group) string {
	var sb []byte
	for k := g.blockStart; k <= g.blockEnd; k++ {
		if all[k].kind == blockSame {
			sb = append(sb, all[k].text...)
		}
	}
	return string(sb)
}

// mergeAdjacentFragments merges adjacent same-type, same-color,
// non-empty-text fragments into one, per spec §4.6.
func mergeAdjacentFragments(frags []Fragment) []Fragment {
	var out []Fragment
	for _, f := range frags {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Type == f.Type && last.Color == f.Color && last.Text != "" && f.Text != "" {
				last.Text += f.Text
				continue
			}
		}
		out = append(out, f)
	}
	return out
}
