// Command wikeddiff reads two files and prints their visual inline diff,
// either as the raw fragment stream or as HTML.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dacharyc/wikeddiff"
	"github.com/dacharyc/wikeddiff/wikeddiffhtml"
)

func main() {
	htmlOut := flag.Bool("html", false, "render as HTML instead of the raw fragment stream")
	fullDiff := flag.Bool("full", false, "disable clipping of unchanged spans")
	noMoves := flag.Bool("no-moves", false, "render moved blocks as plain deletions")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: wikeddiff [-html] [-full] [-no-moves] old.txt new.txt")
		os.Exit(2)
	}

	oldBytes, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "wikeddiff:", err)
		os.Exit(1)
	}
	newBytes, err := os.ReadFile(flag.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "wikeddiff:", err)
		os.Exit(1)
	}

	opts := []wikeddiff.Option{wikeddiff.WithFullDiff(*fullDiff)}
	if *noMoves {
		opts = append(opts, wikeddiff.WithBlockMoves(false))
	}

	res, err := wikeddiff.Diff(string(oldBytes), string(newBytes), opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wikeddiff:", err)
		os.Exit(1)
	}

	if *htmlOut {
		fmt.Println(wikeddiffhtml.Render(res.Stream, wikeddiffhtml.RenderConfig{}))
		return
	}
	printStream(res.Stream)
}

func printStream(s *wikeddiff.Stream) {
	fmt.Print("{")
	for bi, blk := range s.Blocks {
		if bi > 0 {
			fmt.Print(",")
		}
		fmt.Print("[")
		for _, f := range blk {
			printFragment(f)
		}
		fmt.Print("]")
	}
	fmt.Println("}")
}

func printFragment(f wikeddiff.Fragment) {
	switch f.Type {
	case wikeddiff.FragSame:
		fmt.Printf("=%q", f.Text)
	case wikeddiff.FragDelete:
		fmt.Printf("-%q", f.Text)
	case wikeddiff.FragInsert:
		fmt.Printf("+%q", f.Text)
	case wikeddiff.FragMoveOpenLeft:
		fmt.Print("(<")
	case wikeddiff.FragMoveOpenRight:
		fmt.Print("(>")
	case wikeddiff.FragMoveClose:
		fmt.Print(")")
	case wikeddiff.FragMoveMarkLeft:
		fmt.Printf("<%q", f.Text)
	case wikeddiff.FragMoveMarkRight:
		fmt.Printf(">%q", f.Text)
	case wikeddiff.FragClipChars:
		fmt.Print("~")
	case wikeddiff.FragClipBlankLeft:
		fmt.Print(" ~")
	case wikeddiff.FragClipBlankRight:
		fmt.Print("~ ")
	}
}
