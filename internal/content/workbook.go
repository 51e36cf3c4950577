// internal/content/workbook.go
//
// Spreadsheet import for lesson content, so lesson authors can write datasets in Excel.
//
// Expected sheets (first row of each sheet is a header and is skipped):
//   Quiz:       A prompt | B..E options | F correct option
//   Cards:      A id | B kind (word/meaning) | C content | D pair key | E audio URL (optional)
//   Words:      A id | B word | C category
//   Categories: A name (declared order is kept)

package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names read by ImportWorkbook.
const (
	SheetQuiz       = "Quiz"
	SheetCards      = "Cards"
	SheetWords      = "Words"
	SheetCategories = "Categories"
)

// ImportWorkbook reads a Set from an .xlsx file. The result is not validated.
func ImportWorkbook(path string) (Set, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("content: open workbook: %w", err)
	}
	defer f.Close()

	var set Set

	quizRows, err := dataRows(f, SheetQuiz)
	if err != nil {
		return Set{}, err
	}
	for _, row := range quizRows {
		row = pad(row, 6)
		set.Quiz = append(set.Quiz, QuizItem{
			Prompt:  row[0],
			Options: []string{row[1], row[2], row[3], row[4]},
			Correct: row[5],
		})
	}

	cardRows, err := dataRows(f, SheetCards)
	if err != nil {
		return Set{}, err
	}
	for i, row := range cardRows {
		row = pad(row, 5)
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return Set{}, fmt.Errorf("content: %s row %d: id %q: %w", SheetCards, i+2, row[0], err)
		}
		key, err := strconv.Atoi(row[3])
		if err != nil {
			return Set{}, fmt.Errorf("content: %s row %d: pair key %q: %w", SheetCards, i+2, row[3], err)
		}
		set.Cards = append(set.Cards, MatchCard{
			ID:      id,
			Kind:    CardKind(strings.ToLower(row[1])),
			Content: row[2],
			PairKey: key,
			Audio:   row[4],
		})
	}

	wordRows, err := dataRows(f, SheetWords)
	if err != nil {
		return Set{}, err
	}
	for _, row := range wordRows {
		row = pad(row, 3)
		set.Words = append(set.Words, SortableWord{ID: row[0], Word: row[1], Category: row[2]})
	}

	catRows, err := dataRows(f, SheetCategories)
	if err != nil {
		return Set{}, err
	}
	for _, row := range catRows {
		set.Categories = append(set.Categories, pad(row, 1)[0])
	}

	return set, nil
}

// dataRows returns the trimmed, non-empty rows of a sheet after its header.
func dataRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("content: read sheet %s: %w", sheet, err)
	}
	var out [][]string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		empty := true
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
			if row[j] != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}

// pad extends row to n cells; GetRows drops trailing empty cells.
func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
