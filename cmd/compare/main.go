// Comparison tool for validating wikeddiff output quality against
// go-diff's line-based Myers implementation.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dacharyc/wikeddiff"
	godiff "github.com/sergi/go-diff/diffmatchpatch"
)

func main() {
	testCases := []struct {
		name string
		a, b []string
	}{
		{
			name: "Fox example (common anchor word)",
			a:    []string{"The", "quick", "brown", "fox", "jumps"},
			b:    []string{"A", "slow", "red", "fox", "leaps"},
		},
		{
			name: "Prose with common words",
			a:    strings.Split("The quick brown fox jumps over the lazy dog in the park", " "),
			b:    strings.Split("A slow red fox leaps over the sleeping cat in the garden", " "),
		},
		{
			name: "Code-like tokens",
			a:    strings.Split("func main ( ) { fmt . Println ( hello ) }", " "),
			b:    strings.Split("func main ( ) { log . Printf ( world ) }", " "),
		},
		{
			name: "Block move (A B C D -> C D A B)",
			a:    strings.Split("A B C D", " "),
			b:    strings.Split("C D A B", " "),
		},
	}

	largeA := generateLargeText(500, 0)
	largeB := generateLargeText(500, 42)
	testCases = append(testCases, struct{ name string; a, b []string }{
		name: "Large file (500 lines, scattered changes)",
		a:    largeA,
		b:    largeB,
	})

	for _, tc := range testCases {
		fmt.Printf("\n=== %s ===\n", tc.name)
		aText := strings.Join(tc.a, "\n")
		bText := strings.Join(tc.b, "\n")
		fmt.Printf("A: %d elements, B: %d elements\n", len(tc.a), len(tc.b))

		start := time.Now()
		res, err := wikeddiff.Diff(aText, bText)
		wikedTime := time.Since(start)
		if err != nil {
			fmt.Printf("wikeddiff error: %v\n", err)
			continue
		}

		dmp := godiff.New()
		start = time.Now()
		goDiffs := dmp.DiffMain(aText, bText, true)
		goDiffTime := time.Since(start)

		wikedStats := analyzeWikEdDiff(res.Stream)
		goDiffStats := analyzeGoDiff(goDiffs)

		fmt.Printf("\nwikeddiff: %v\n", wikedTime)
		fmt.Printf("  Fragments: %d (Same: %d, Delete: %d, Insert: %d, Moved groups: %d)\n",
			wikedStats.total, wikedStats.equal, wikedStats.delete, wikedStats.insert, wikedStats.movedGroups)
		fmt.Printf("  Change regions: %d\n", wikedStats.changeRegions)

		fmt.Printf("\ngo-diff: %v\n", goDiffTime)
		fmt.Printf("  Operations: %d (Equal: %d, Delete: %d, Insert: %d)\n",
			goDiffStats.total, goDiffStats.equal, goDiffStats.delete, goDiffStats.insert)
		fmt.Printf("  Change regions: %d\n", goDiffStats.changeRegions)

		if len(tc.a) <= 20 {
			fmt.Println("\nwikeddiff output:")
			for _, blk := range res.Stream.Blocks {
				for _, f := range blk {
					printFragment(f)
				}
			}
		}
	}
}

func printFragment(f wikeddiff.Fragment) {
	switch f.Type {
	case wikeddiff.FragSame:
		fmt.Printf("  = %q\n", f.Text)
	case wikeddiff.FragDelete:
		fmt.Printf("  - %q\n", f.Text)
	case wikeddiff.FragInsert:
		fmt.Printf("  + %q\n", f.Text)
	case wikeddiff.FragMoveMarkLeft:
		fmt.Printf("  < %q (color %d)\n", f.Text, f.Color)
	case wikeddiff.FragMoveMarkRight:
		fmt.Printf("  > %q (color %d)\n", f.Text, f.Color)
	}
}

type diffStats struct {
	total, equal, delete, insert int
	movedGroups                  int
	changeRegions                int
}

func analyzeWikEdDiff(s *wikeddiff.Stream) diffStats {
	var st diffStats
	inChange := false
	seenColors := map[int]bool{}
	for _, blk := range s.Blocks {
		for _, f := range blk {
			st.total++
			switch f.Type {
			case wikeddiff.FragSame:
				st.equal++
				inChange = false
			case wikeddiff.FragDelete:
				st.delete++
				if !inChange {
					st.changeRegions++
					inChange = true
				}
			case wikeddiff.FragInsert:
				st.insert++
				if !inChange {
					st.changeRegions++
					inChange = true
				}
			case wikeddiff.FragMoveMarkLeft, wikeddiff.FragMoveMarkRight:
				if !seenColors[f.Color] {
					seenColors[f.Color] = true
					st.movedGroups++
				}
			}
		}
	}
	return st
}

func analyzeGoDiff(diffs []godiff.Diff) diffStats {
	var s diffStats
	s.total = len(diffs)
	inChange := false
	for _, d := range diffs {
		switch d.Type {
		case godiff.DiffEqual:
			s.equal++
			inChange = false
		case godiff.DiffDelete:
			s.delete++
			if !inChange {
				s.changeRegions++
				inChange = true
			}
		case godiff.DiffInsert:
			s.insert++
			if !inChange {
				s.changeRegions++
				inChange = true
			}
		}
	}
	return s
}

func generateLargeText(lines int, seed int) []string {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"func", "main", "return", "if", "else", "for", "range", "var", "const",
		"import", "package", "type", "struct", "interface", "map", "slice"}

	result := make([]string, lines)
	for i := 0; i < lines; i++ {
		lineWords := make([]string, 5+i%3)
		for j := range lineWords {
			idx := (i*7 + j*13 + seed) % len(words)
			lineWords[j] = words[idx]
		}
		result[i] = strings.Join(lineWords, " ")
	}

	for i := seed % 10; i < lines; i += 10 + seed%5 {
		result[i] = "CHANGED LINE " + fmt.Sprint(i)
	}

	return result
}
