package addrsplit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var leftAttrsFilled = []color.Attribute{color.FgHiYellow, color.Bold}
var leftAttrsBlank = []color.Attribute{color.FgHiBlack}
var rightAttrs = []color.Attribute{color.FgHiWhite}

// PrintEmail pretty-prints the components of rec to w.
func PrintEmail(w io.Writer, rec EmailRecord) {
	printRecord(w, rec)
}

// PrintURL pretty-prints the components of rec to w.
func PrintURL(w io.Writer, rec URLRecord) {
	printRecord(w, rec)
}

// printRecord prints one right-aligned line per column of rec,
// with labels of empty values dimmed.
func printRecord(w io.Writer, rec Record) {
	columns, values := rec.Columns(), rec.Values()

	labels := make([]string, len(columns))
	var width int
	for i, column := range columns {
		labels[i] = strings.ReplaceAll(column, "_", " ")
		if len(labels[i]) > width {
			width = len(labels[i])
		}
	}

	for i, label := range labels {
		if len(values[i]) != 0 {
			color.New(leftAttrsFilled...).Fprintf(w, "%*s: ", width, label)
		} else {
			color.New(leftAttrsBlank...).Fprintf(w, "%*s: ", width, label)
		}
		color.New(rightAttrs...).Fprintln(w, values[i])
	}
	fmt.Fprintln(w)
}
