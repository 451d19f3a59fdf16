package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
)

// Column is one grid column over rows of type T. A column with a Permission
// or an Action is only rendered for roles that hold it; this is presentation
// only, the server decides independently.
type Column[T any] struct {
	Header     string
	Value      func(row T) string
	Permission auth.Permission
	Action     auth.Action
}

// Visible reports whether role sees the column
func (c Column[T]) Visible(role models.Role) bool {
	if c.Permission != "" && !auth.HasPermission(role, c.Permission) {
		return false
	}
	if c.Action != "" && !auth.CanPerform(role, c.Action) {
		return false
	}
	return true
}

// VisibleColumns filters cols down to those role sees
func VisibleColumns[T any](cols []Column[T], role models.Role) []Column[T] {
	out := make([]Column[T], 0, len(cols))
	for _, c := range cols {
		if c.Visible(role) {
			out = append(out, c)
		}
	}
	return out
}

// RenderGrid writes rows as an aligned table with the columns role may see
func RenderGrid[T any](w io.Writer, cols []Column[T], rows []T, role models.Role) error {
	visible := VisibleColumns(cols, role)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(visible))
	for i, c := range visible {
		headers[i] = c.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	cells := make([]string, len(visible))
	for _, row := range rows {
		for i, c := range visible {
			v := c.Value(row)
			if v == "" {
				v = "-"
			}
			cells[i] = v
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
