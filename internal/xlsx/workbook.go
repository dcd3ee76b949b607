// Package xlsx implements the spreadsheet interchange format for web
// contacts. Export renders the contact list as a single-sheet workbook with
// one fixed header row; import parses an uploaded workbook back into
// contacts, accepting the same columns in any order. The workbook container
// itself is handled entirely by excelize; this package only fixes the table
// layout and the cell coercion rules.
package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/speakergym/funnel-tracker/internal/domain"
	"github.com/speakergym/funnel-tracker/internal/utils"
)

// SheetName is the tab carrying the contact table.
const SheetName = "Contacts"

// columns is the export column order. Import requires exactly this header
// set but accepts any order.
var columns = []string{
	"id",
	"name",
	"notes",
	"joinedCommunity",
	"tookChallenge",
	"submittedPaid",
	"customer",
	"dateAdded",
}

// Workbook-related errors.
var (
	// ErrInvalidWorkbook indicates the uploaded bytes are not a readable
	// xlsx workbook.
	ErrInvalidWorkbook = errors.New("invalid workbook")

	// ErrWrongHeaders indicates the first row of the uploaded sheet does
	// not match the expected contact columns.
	ErrWrongHeaders = errors.New("workbook headers do not match the contact columns")
)

// Encode renders contacts as an xlsx workbook: one header row, one data row
// per contact, stage flags as native boolean cells.
func Encode(contacts []domain.WebContact) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, c := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []any{c.ID, c.Name, c.Notes, c.JoinedCommunity, c.TookChallenge, c.SubmittedPaid, c.Customer, c.DateAdded}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.WriteToBuffer()
}

// Decode parses an uploaded workbook into contacts. The first sheet is read;
// its header row must carry exactly the contact columns (any order). Blank
// rows are skipped. A missing or unparsable id cell gets a fresh millisecond
// timestamp id, a missing dateAdded cell gets the current UTC time, and ids
// are kept unique across the decoded rows.
func Decode(r io.Reader) ([]domain.WebContact, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrInvalidWorkbook
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrInvalidWorkbook
	}
	if len(rows) == 0 {
		return nil, ErrWrongHeaders
	}
	col, ok := headerIndex(rows[0])
	if !ok {
		return nil, ErrWrongHeaders
	}

	contacts := make([]domain.WebContact, 0, len(rows)-1)
	used := make(map[int64]struct{}, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		id := utils.Atoi64Default(cellAt(row, col["id"]), 0)
		if id <= 0 {
			id = domain.UnixMilliNow()
		}
		for {
			if _, taken := used[id]; !taken {
				break
			}
			id++
		}
		used[id] = struct{}{}

		added := cellAt(row, col["dateAdded"])
		if added == "" {
			added = domain.UTCTimestamp()
		}
		contacts = append(contacts, domain.WebContact{
			ID:              id,
			Name:            strings.TrimSpace(cellAt(row, col["name"])),
			Notes:           cellAt(row, col["notes"]),
			JoinedCommunity: truthy(cellAt(row, col["joinedCommunity"])),
			TookChallenge:   truthy(cellAt(row, col["tookChallenge"])),
			SubmittedPaid:   truthy(cellAt(row, col["submittedPaid"])),
			Customer:        truthy(cellAt(row, col["customer"])),
			DateAdded:       added,
		})
	}
	return contacts, nil
}

// headerIndex maps column names to their position, reporting false unless
// the row carries exactly the expected header set.
func headerIndex(row []string) (map[string]int, bool) {
	if len(row) != len(columns) {
		return nil, false
	}
	idx := make(map[string]int, len(row))
	for i, h := range row {
		idx[h] = i
	}
	for _, want := range columns {
		if _, ok := idx[want]; !ok {
			return nil, false
		}
	}
	return idx, true
}

// cellAt returns the cell at index i, tolerating rows excelize has trimmed
// short of the full column count.
func cellAt(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}

// blankRow reports whether every cell is empty after trimming.
func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// truthy maps the accepted spreadsheet spellings of true. Native boolean
// cells surface as "TRUE"/"FALSE" strings and fold into the same rule;
// anything unrecognized is false.
func truthy(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
