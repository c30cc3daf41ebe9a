// Package libdiff computes line oriented differences between encoded
// documents.
package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return " "
}

// Hunk is a run of lines sharing one Op. Lines carry no trailing newline.
type Hunk struct {
	Op    Op
	Lines []string
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Hunk {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	res := make([]Hunk, 0, len(diffs))
	for i := range diffs {
		d := &diffs[i]
		h := Hunk{Lines: splitLines(d.Text)}
		switch d.Type {
		case diffpatch.DiffInsert:
			h.Op = Insert
		case diffpatch.DiffDelete:
			h.Op = Delete
		default:
			h.Op = Equal
		}
		if len(h.Lines) == 0 {
			continue
		}
		if n := len(res); n > 0 && res[n-1].Op == h.Op {
			res[n-1].Lines = append(res[n-1].Lines, h.Lines...)
			continue
		}
		res = append(res, h)
	}
	return res
}

// Changed reports whether any hunk inserts or deletes.
func Changed(hunks []Hunk) bool {
	for i := range hunks {
		if hunks[i].Op != Equal {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
