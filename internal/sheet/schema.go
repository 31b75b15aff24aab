package sheet

import (
	"fmt"
	"strings"
)

// RequiredColumns must exist in the header row before any row is processed.
var RequiredColumns = []string{"username", "email", "name"}

// OptionalColumns are read when present.
var OptionalColumns = []string{"password"}

// Keys for the output columns the tool owns.
const (
	ColStatus   = "user status"
	ColResponse = "api response"
	ColUserID   = "user id"
	ColNotes    = "notes"
)

// statusColumns are appended in this order when absent, so repeated runs
// against an already-augmented sheet produce an identical schema.
var statusColumns = []struct {
	Label string
	Key   string
}{
	{"User Status", ColStatus},
	{"API Response", ColResponse},
	{"User ID", ColUserID},
	{"Notes", ColNotes},
}

// Columns maps a normalized header name to its 1-based column index.
type Columns map[string]int

// SchemaError reports an unusable header row: required columns missing, or
// two headers normalizing to the same name.
type SchemaError struct {
	Missing   []string
	Duplicate string
}

func (e *SchemaError) Error() string {
	if e.Duplicate != "" {
		return fmt.Sprintf("duplicate column %q in row 1", e.Duplicate)
	}
	return fmt.Sprintf("missing required columns in row 1: %s", strings.Join(e.Missing, ", "))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveColumns reads the header row, verifies the required columns and
// appends any output columns the sheet does not carry yet. Idempotent: a
// second call on the same sheet adds nothing and returns the same mapping.
func ResolveColumns(wb *Workbook) (Columns, error) {
	rows, err := wb.Rows()
	if err != nil {
		return nil, err
	}

	cols := Columns{}
	if len(rows) > 0 {
		for i, header := range rows[0] {
			key := normalize(header)
			if key == "" {
				continue
			}
			if _, ok := cols[key]; ok {
				return nil, &SchemaError{Duplicate: key}
			}
			cols[key] = i + 1
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	next := wb.MaxCol() + 1
	for _, sc := range statusColumns {
		if _, ok := cols[sc.Key]; ok {
			continue
		}
		if err := wb.SetCell(1, next, sc.Label); err != nil {
			return nil, err
		}
		cols[sc.Key] = next
		next++
	}
	return cols, nil
}
