package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestWorkbook(t *testing.T, rows [][]any) *Workbook {
	t.Helper()
	wb, err := Open(writeWorkbook(t, rows))
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestResolveColumnsAppendsOutputColumns(t *testing.T) {
	wb := openTestWorkbook(t, [][]any{{"username", "email", "name"}})

	cols, err := ResolveColumns(wb)
	require.NoError(t, err)

	assert.Equal(t, 1, cols["username"])
	assert.Equal(t, 2, cols["email"])
	assert.Equal(t, 3, cols["name"])
	assert.Equal(t, 4, cols[ColStatus])
	assert.Equal(t, 5, cols[ColResponse])
	assert.Equal(t, 6, cols[ColUserID])
	assert.Equal(t, 7, cols[ColNotes])

	assert.Equal(t, "User Status", wb.CellValue(1, 4))
	assert.Equal(t, "API Response", wb.CellValue(1, 5))
	assert.Equal(t, "User ID", wb.CellValue(1, 6))
	assert.Equal(t, "Notes", wb.CellValue(1, 7))
}

func TestResolveColumnsIdempotent(t *testing.T) {
	wb := openTestWorkbook(t, [][]any{{"username", "email", "name"}})

	first, err := ResolveColumns(wb)
	require.NoError(t, err)
	widthAfterFirst := wb.MaxCol()

	second, err := ResolveColumns(wb)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, widthAfterFirst, wb.MaxCol())
}

func TestResolveColumnsNormalizesHeaders(t *testing.T) {
	wb := openTestWorkbook(t, [][]any{{"  Username ", "EMAIL", "Name", "Password"}})

	cols, err := ResolveColumns(wb)
	require.NoError(t, err)
	assert.Equal(t, 1, cols["username"])
	assert.Equal(t, 2, cols["email"])
	assert.Equal(t, 3, cols["name"])
	assert.Equal(t, 4, cols["password"])
}

func TestResolveColumnsKeepsExistingOutputColumns(t *testing.T) {
	wb := openTestWorkbook(t, [][]any{{"username", "email", "name", "User ID"}})

	cols, err := ResolveColumns(wb)
	require.NoError(t, err)

	assert.Equal(t, 4, cols[ColUserID])
	// Remaining output columns still appended in canonical order.
	assert.Equal(t, 5, cols[ColStatus])
	assert.Equal(t, 6, cols[ColResponse])
	assert.Equal(t, 7, cols[ColNotes])
}

func TestResolveColumnsListsAllMissingRequired(t *testing.T) {
	wb := openTestWorkbook(t, [][]any{{"username", "password"}})

	_, err := ResolveColumns(wb)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"email", "name"}, schemaErr.Missing)
}

func TestResolveColumnsRejectsDuplicateHeaders(t *testing.T) {
	wb := openTestWorkbook(t, [][]any{{"username", "email", "name", "USERNAME"}})

	_, err := ResolveColumns(wb)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "username", schemaErr.Duplicate)
}
