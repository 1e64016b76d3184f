// Package wikeddiff computes a visual inline text difference between two
// revisions of a document, built on Heckel's 1978 unique-anchor matching
// algorithm and extended with:
//
//   - Paragraph/line/sentence/chunk/word tokenization with an optional
//     character-level refinement pass for in-word edits.
//   - Block-move detection: a relocated passage is marked at its new
//     position rather than rendered as an unrelated delete-then-insert.
//   - A clipper that omits long unchanged spans from the output stream,
//     so a single-line edit in a large document doesn't require printing
//     the whole document back.
//
// The result is a flat stream of typed fragments (same/delete/insert/move
// markers), not a rendered document; callers needing HTML output can use
// wikeddiffhtml, a separate package that consumes the stream.
package wikeddiff
