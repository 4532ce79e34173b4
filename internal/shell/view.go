package shell

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/csvnexus/internal/core"
)

// render prints header and rows as left-aligned columns followed by a row
// count. Line breaks inside cells are shown as \n so every row stays on one
// line.
func render(w io.Writer, header core.Header, rows []core.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, joinCells(header))
	rule := make([]string, len(header))
	for i, name := range header {
		rule[i] = strings.Repeat("-", max(len([]rune(name)), 1))
	}
	fmt.Fprintln(tw, joinCells(rule))

	for _, row := range rows {
		fmt.Fprintln(tw, joinCells(row.Strings()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return err
}

// renderColumns prints each column name with the kind of its value in
// sample, numbered from 1 as the sort menu numbers them.
func renderColumns(w io.Writer, header core.Header, sample core.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, name := range header {
		kind := core.KindText
		if i < len(sample) {
			kind = sample[i].Kind()
		}
		fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, cellEscaper.Replace(name), kind)
	}
	return tw.Flush()
}

var cellEscaper = strings.NewReplacer("\t", " ", "\r", `\r`, "\n", `\n`)

func joinCells(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = cellEscaper.Replace(c)
	}
	return strings.Join(escaped, "\t")
}
