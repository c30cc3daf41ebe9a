package libdiff

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

type UnifiedOption func(*unifiedOpts)

type unifiedOpts struct {
	context int
	color   bool
}

// UnifiedContext sets the number of unchanged lines shown around each
// change. The default is 3.
func UnifiedContext(n int) UnifiedOption {
	return func(o *unifiedOpts) { o.context = max(0, n) }
}

func UnifiedColor(v bool) UnifiedOption {
	return func(o *unifiedOpts) { o.color = v }
}

type line struct {
	op   Op
	text string
	a, b int
}

// Unified writes hunks in unified diff format. Nothing is written when
// there are no changes.
func Unified(w io.Writer, fromName, toName string, hunks []Hunk, opts ...UnifiedOption) error {
	o := &unifiedOpts{context: 3}
	for _, opt := range opts {
		opt(o)
	}
	if !Changed(hunks) {
		return nil
	}
	lines := flatten(hunks)

	var (
		add = fmt.Sprint
		del = fmt.Sprint
		hdr = fmt.Sprint
	)
	if o.color {
		add = color.New(color.FgGreen).Sprint
		del = color.New(color.FgRed).Sprint
		hdr = color.New(color.FgCyan).Sprint
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "--- %s\n+++ %s\n", fromName, toName)
	for i := 0; i < len(lines); {
		if lines[i].op == Equal {
			i++
			continue
		}
		start := max(0, i-o.context)
		last := i
		j := i
		for ; j < len(lines); j++ {
			if lines[j].op != Equal {
				last = j
				continue
			}
			if j-last > 2*o.context {
				break
			}
		}
		end := min(len(lines), last+o.context+1)
		writeHeader(bw, lines[start:end], hdr)
		for _, l := range lines[start:end] {
			switch l.op {
			case Insert:
				bw.WriteString(add("+" + l.text))
			case Delete:
				bw.WriteString(del("-" + l.text))
			default:
				bw.WriteString(" " + l.text)
			}
			bw.WriteByte('\n')
		}
		i = end
	}
	return bw.Flush()
}

func flatten(hunks []Hunk) []line {
	var res []line
	a, b := 0, 0
	for _, h := range hunks {
		for _, t := range h.Lines {
			res = append(res, line{op: h.Op, text: t, a: a, b: b})
			switch h.Op {
			case Insert:
				b++
			case Delete:
				a++
			default:
				a++
				b++
			}
		}
	}
	return res
}

func writeHeader(w *bufio.Writer, ls []line, hdr func(...any) string) {
	na, nb := 0, 0
	for _, l := range ls {
		switch l.op {
		case Insert:
			nb++
		case Delete:
			na++
		default:
			na++
			nb++
		}
	}
	sa, sb := ls[0].a, ls[0].b
	if na != 0 {
		sa++
	}
	if nb != 0 {
		sb++
	}
	w.WriteString(hdr(fmt.Sprintf("@@ -%d,%d +%d,%d @@", sa, na, sb, nb)))
	w.WriteByte('\n')
}
