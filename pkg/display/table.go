// Package display renders human-readable tables for pbrew query commands.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/pbrew/pkg/output"
	"github.com/ajxudir/pbrew/pkg/utils"
)

// ColumnDef defines a single table column's properties.
//
// Fields:
//   - Name: Column header text (displayed in uppercase)
//   - MinWidth: Minimum column width in characters
type ColumnDef struct {
	// Name is the column header text.
	Name string

	// MinWidth is the minimum width in characters.
	// The column expands to fit content if content is wider.
	MinWidth int
}

// outdatedSchema is the column layout for the outdated listing.
var outdatedSchema = []ColumnDef{
	{Name: "NAME", MinWidth: 12},
	{Name: "INSTALLED", MinWidth: 10},
	{Name: "CURRENT", MinWidth: 10},
	{Name: "SCOPE", MinWidth: 7},
}

// placeholder stands in for version fields the outdated query did not report.
const placeholder = "-"

// RenderOutdated writes the outdated packages as an aligned table.
//
// It performs the following operations:
//   - Step 1: Computes each column's width from its header, minimum width,
//     and widest cell (display-width aware, so wide characters align)
//   - Step 2: Writes the header row
//   - Step 3: Writes one row per package in input order
//
// Parameters:
//   - w: Destination writer (typically os.Stdout)
//   - rows: Outdated packages in formulae-then-casks order
//
// Returns:
//   - error: Any error from writing
func RenderOutdated(w io.Writer, rows []output.OutdatedRow) error {
	widths := make([]int, len(outdatedSchema))
	for i, col := range outdatedSchema {
		widths[i] = col.MinWidth
		if hw := utils.DisplayWidth(col.Name); hw > widths[i] {
			widths[i] = hw
		}
	}
	for _, row := range rows {
		for i, cell := range cells(row) {
			if cw := utils.DisplayWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	header := make([]string, len(outdatedSchema))
	for i, col := range outdatedSchema {
		header[i] = utils.ToWidth(col.Name, widths[i])
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " ")); err != nil {
		return err
	}

	for _, row := range rows {
		line := make([]string, 0, len(outdatedSchema))
		for i, cell := range cells(row) {
			line = append(line, utils.ToWidth(cell, widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " ")); err != nil {
			return err
		}
	}

	return nil
}

// cells maps a row to its column values in schema order.
func cells(row output.OutdatedRow) []string {
	installed := row.Installed
	if installed == "" {
		installed = placeholder
	}
	current := row.Current
	if current == "" {
		current = placeholder
	}
	return []string{row.Name, installed, current, row.Scope}
}
