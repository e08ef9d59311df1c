package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
)

// OutdatedRow is one outdated package prepared for display or structured
// output.
//
// Fields:
//   - Name: Package name
//   - Installed: Currently installed version, may be empty if unreported
//   - Current: Newest available version, may be empty if unreported
//   - Scope: Update scope classification (major, minor, patch, unknown)
type OutdatedRow struct {
	Name      string
	Installed string
	Current   string
	Scope     string
}

// WriteOutdatedJSON writes outdated packages as JSON with stable key order.
//
// It performs the following operations:
//   - Step 1: Builds an ordered map per row so keys always serialize in the
//     same order (name, installed, current, scope)
//   - Step 2: Wraps the rows with a count field
//   - Step 3: Marshals with indentation and HTML escaping disabled
//
// Parameters:
//   - w: Destination writer (typically os.Stdout)
//   - rows: Outdated packages in formulae-then-casks order
//
// Returns:
//   - error: Any error from marshaling or writing
func WriteOutdatedJSON(w io.Writer, rows []OutdatedRow) error {
	entries := make([]*orderedmap.OrderedMap, 0, len(rows))
	for _, row := range rows {
		entry := orderedmap.New()
		entry.Set("name", row.Name)
		entry.Set("installed", row.Installed)
		entry.Set("current", row.Current)
		entry.Set("scope", row.Scope)
		entries = append(entries, entry)
	}

	doc := orderedmap.New()
	doc.Set("outdated", entries)
	doc.Set("count", len(rows))

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal outdated packages: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
