// Package importer walks the data rows of a workbook, classifies each one
// and drives at most one account-creation call per eligible row, writing the
// outcome back into the status columns.
package importer

import (
	"context"
	"log/slog"

	"github.com/ashishdungdung/discourse-create-bulk-users/internal/discourse"
	"github.com/ashishdungdung/discourse-create-bulk-users/internal/password"
	"github.com/ashishdungdung/discourse-create-bulk-users/internal/sheet"
)

// Creator is the one outbound operation the engine drives. The Discourse
// client satisfies it; tests stub it.
type Creator interface {
	CreateUser(ctx context.Context, user discourse.NewUser) discourse.Outcome
}

// Summary accumulates per-row dispositions for the final report.
type Summary struct {
	Created int
	Failed  int
	Skipped int
}

// Cell text written by the engine.
const (
	statusCreated  = "Created"
	statusFailed   = "Failed"
	statusSkipped  = "Skipped"
	statusInvalid  = "Invalid row"
	noteHasUserID  = "Already has User ID"
	noteGenerated  = "Generated password"
	msgMissingReqd = "Missing one or more required fields"
)

// Run processes rows 2..MaxRow one at a time. Classification order: blank
// rows are skipped silently; rows already carrying a User ID are never
// re-submitted, which makes re-runs over a partially completed sheet safe;
// rows missing a required field fail without a call; the rest go to the
// creator exactly once.
func Run(ctx context.Context, wb *sheet.Workbook, cols sheet.Columns, creator Creator, logger *slog.Logger) (Summary, error) {
	var sum Summary

	statusCol := cols[sheet.ColStatus]
	responseCol := cols[sheet.ColResponse]
	userIDCol := cols[sheet.ColUserID]
	notesCol := cols[sheet.ColNotes]

	fields := make([]string, 0, len(sheet.RequiredColumns)+len(sheet.OptionalColumns))
	fields = append(fields, sheet.RequiredColumns...)
	fields = append(fields, sheet.OptionalColumns...)

	maxRow := wb.MaxRow()
	for row := 2; row <= maxRow; row++ {
		record := make(map[string]string, len(fields))
		blank := true
		for _, key := range fields {
			col, ok := cols[key]
			if !ok {
				record[key] = ""
				continue
			}
			value := wb.CellValue(row, col)
			record[key] = value
			if value != "" {
				blank = false
			}
		}

		if blank {
			continue
		}

		if wb.CellValue(row, userIDCol) != "" {
			if err := wb.SetCell(row, statusCol, statusSkipped); err != nil {
				return sum, err
			}
			if err := wb.SetCell(row, notesCol, noteHasUserID); err != nil {
				return sum, err
			}
			sum.Skipped++
			logger.Debug("row already has a user id", slog.Int("row", row))
			continue
		}

		if missingRequired(record) {
			if err := wb.SetCell(row, statusCol, statusInvalid); err != nil {
				return sum, err
			}
			if err := wb.SetCell(row, responseCol, msgMissingReqd); err != nil {
				return sum, err
			}
			sum.Failed++
			logger.Debug("row missing required fields", slog.Int("row", row))
			continue
		}

		generated := false
		if record["password"] == "" {
			pw, err := password.Generate(password.DefaultLength)
			if err != nil {
				return sum, err
			}
			record["password"] = pw
			generated = true
		}

		outcome := creator.CreateUser(ctx, discourse.NewUser{
			Name:     record["name"],
			Email:    record["email"],
			Username: record["username"],
			Password: record["password"],
		})

		status := statusCreated
		if !outcome.Success {
			status = statusFailed
		}
		if err := wb.SetCell(row, statusCol, status); err != nil {
			return sum, err
		}
		if err := wb.SetCell(row, responseCol, outcome.Message); err != nil {
			return sum, err
		}
		userID := any("")
		if outcome.UserID != nil {
			userID = *outcome.UserID
		}
		if err := wb.SetCell(row, userIDCol, userID); err != nil {
			return sum, err
		}
		notes := ""
		if generated {
			notes = noteGenerated
		}
		if err := wb.SetCell(row, notesCol, notes); err != nil {
			return sum, err
		}

		if outcome.Success {
			sum.Created++
		} else {
			sum.Failed++
		}
		logger.Debug("row processed", slog.Int("row", row), slog.String("status", status))
	}

	return sum, nil
}

func missingRequired(record map[string]string) bool {
	for _, key := range sheet.RequiredColumns {
		if record[key] == "" {
			return true
		}
	}
	return false
}
