// Package wikeddiffhtml renders a wikeddiff fragment stream as HTML. It is
// a separate, optional consumer of wikeddiff.Stream — the core package
// never imports it and knows nothing about HTML, per the diff engine's
// scope boundary around rendering.
package wikeddiffhtml

import (
	"html"
	"strconv"
	"strings"

	"github.com/dacharyc/wikeddiff"
)

// RenderConfig controls the emitted markup. The zero value uses the
// default class names below.
type RenderConfig struct {
	// ContainerClass wraps the whole rendered stream. Default "wikeddiff".
	ContainerClass string
	// BlockClass wraps each comma-separated block from the stream's
	// bracket grouping. Default "wikeddiff-block".
	BlockClass string
	// InsertClass, DeleteClass, MoveClass name the span classes applied to
	// "+", "-", and move-mark fragments respectively.
	InsertClass string
	DeleteClass string
	MoveClass   string
	// ClipClass names the span wrapping an omission marker's glyph.
	ClipClass string
}

func (c RenderConfig) withDefaults() RenderConfig {
	if c.ContainerClass == "" {
		c.ContainerClass = "wikeddiff"
	}
	if c.BlockClass == "" {
		c.BlockClass = "wikeddiff-block"
	}
	if c.InsertClass == "" {
		c.InsertClass = "wikeddiff-insert"
	}
	if c.DeleteClass == "" {
		c.DeleteClass = "wikeddiff-delete"
	}
	if c.MoveClass == "" {
		c.MoveClass = "wikeddiff-move"
	}
	if c.ClipClass == "" {
		c.ClipClass = "wikeddiff-clip"
	}
	return c
}

// Render turns a fragment stream into a self-contained HTML fragment: a
// container div holding one child span per block, each child holding one
// tagged span per fragment. Moved content gets a "data-color" attribute
// so a stylesheet can assign matching colors to a move's mark and its
// wrapped content.
func Render(stream *wikeddiff.Stream, cfg RenderConfig) string {
	cfg = cfg.withDefaults()
	var sb strings.Builder
	sb.WriteString(`<div class="`)
	sb.WriteString(cfg.ContainerClass)
	sb.WriteString(`">`)
	for _, blk := range stream.Blocks {
		sb.WriteString(`<span class="`)
		sb.WriteString(cfg.BlockClass)
		sb.WriteString(`">`)
		for _, f := range blk {
			renderFragment(&sb, f, cfg)
		}
		sb.WriteString(`</span>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderFragment(sb *strings.Builder, f wikeddiff.Fragment, cfg RenderConfig) {
	switch f.Type {
	case wikeddiff.FragSame:
		sb.WriteString(html.EscapeString(f.Text))
	case wikeddiff.FragInsert:
		writeSpan(sb, cfg.InsertClass, f.Color, f.Text)
	case wikeddiff.FragDelete:
		writeSpan(sb, cfg.DeleteClass, f.Color, f.Text)
	case wikeddiff.FragMoveMarkLeft:
		writeSpan(sb, cfg.MoveClass, f.Color, "←"+f.Text)
	case wikeddiff.FragMoveMarkRight:
		writeSpan(sb, cfg.MoveClass, f.Color, f.Text+"→")
	case wikeddiff.FragMoveOpenLeft, wikeddiff.FragMoveOpenRight:
		sb.WriteString(`<span class="` + cfg.MoveClass + `" data-color="` + strconv.Itoa(f.Color) + `">`)
	case wikeddiff.FragMoveClose:
		sb.WriteString(`</span>`)
	case wikeddiff.FragClipChars:
		writeClip(sb, cfg, "…")
	case wikeddiff.FragClipBlankLeft, wikeddiff.FragClipBlankRight:
		writeClip(sb, cfg, "·")
	}
}

func writeSpan(sb *strings.Builder, class string, color int, text string) {
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	if color != wikeddiff.None {
		sb.WriteString(`" data-color="`)
		sb.WriteString(strconv.Itoa(color))
	}
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(text))
	sb.WriteString(`</span>`)
}

func writeClip(sb *strings.Builder, cfg RenderConfig, glyph string) {
	sb.WriteString(`<span class="`)
	sb.WriteString(cfg.ClipClass)
	sb.WriteString(`">`)
	sb.WriteString(glyph)
	sb.WriteString(`</span>`)
}
