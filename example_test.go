package wikeddiff_test

import (
	"fmt"

	"github.com/dacharyc/wikeddiff"
)

func printFragments(s *wikeddiff.Stream) {
	for _, blk := range s.Blocks {
		for _, f := range blk {
			switch f.Type {
			case wikeddiff.FragSame:
				fmt.Printf("= %q\n", f.Text)
			case wikeddiff.FragDelete:
				fmt.Printf("- %q\n", f.Text)
			case wikeddiff.FragInsert:
				fmt.Printf("+ %q\n", f.Text)
			}
		}
	}
}

func ExampleDiff() {
	res, err := wikeddiff.Diff("the quick brown fox", "the quick red fox")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	printFragments(res.Stream)
	// Output:
	// = "the quick "
	// - "brown"
	// + "red"
	// = " fox"
}

func ExampleDiff_noChange() {
	res, err := wikeddiff.Diff("hello world", "hello world")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	printFragments(res.Stream)
	// Output:
	// = "hello world"
}

func ExampleWithBlockMoves() {
	res, err := wikeddiff.Diff("A B C D", "C D A B", wikeddiff.WithBlockMoves(false))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var sawMove bool
	for _, blk := range res.Stream.Blocks {
		for _, f := range blk {
			if f.Type == wikeddiff.FragMoveMarkLeft || f.Type == wikeddiff.FragMoveMarkRight {
				sawMove = true
			}
		}
	}
	fmt.Println("move marks present:", sawMove)
	// Output:
	// move marks present: false
}

func ExampleWithFullDiff() {
	res, err := wikeddiff.Diff("short old text", "short new text", wikeddiff.WithFullDiff(true))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("blocks:", len(res.Stream.Blocks))
	// Output:
	// blocks: 1
}
