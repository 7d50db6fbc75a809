package repositories

import (
	"fmt"
	"strings"

	"cardfolio/internal/models"
	"cardfolio/internal/schema"

	"github.com/google/uuid"
)

// legacyIDSpace namespaces the ids derived for rows written before the ID
// column existed.
var legacyIDSpace = uuid.MustParse("6f1f3c4e-2b7d-4c55-9a3e-7d0c2f8b9e10")

// Warning records a cell that could not be read and was replaced by its
// schema fallback. Warnings never stop a load.
type Warning struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d, %s: %q", w.Row, w.Column, w.Value)
}

// rowReader resolves the raw text of each schema column for one row.
type rowReader struct {
	index map[string]int
	cells []string
}

// get returns the raw cell and whether the file has the column at all.
func (r rowReader) get(column string) (string, bool) {
	i, ok := r.index[column]
	if !ok {
		return "", false
	}
	if i >= len(r.cells) {
		return "", true
	}
	return r.cells[i], true
}

// headerIndex maps schema columns to their position in the header. Legacy
// aliases only apply when the current column is absent.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := schema.Lookup(h); ok {
			if _, dup := index[h]; !dup {
				index[h] = i
			}
		}
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if current, ok := schema.Aliases[h]; ok {
			if _, present := index[current]; !present {
				index[current] = i
			}
		}
	}
	return index
}

// decodeRows turns raw rows into schema-conformant cards. Every column is read
// through its registry codec: missing columns decode their migration default
// (or are derived), unreadable cells are recorded and decode their fallback.
func decodeRows(header []string, rows [][]string) ([]models.CreditCard, []Warning) {
	index := headerIndex(header)
	fields := schema.Fields()
	cards := make([]models.CreditCard, 0, len(rows))
	var warnings []Warning
	seenIDs := make(map[string]bool, len(rows))

	for i, cells := range rows {
		rowNum := i + 1
		r := rowReader{index: index, cells: cells}

		var (
			c       models.CreditCard
			derived []string
		)
		for _, f := range fields {
			raw, present := r.get(f.Name)
			if !present {
				if f.Derived {
					derived = append(derived, f.Name)
					continue
				}
				raw = f.Default
			}
			if !f.Decode(&c, raw) {
				warnings = append(warnings, Warning{Row: rowNum, Column: f.Name, Value: raw})
				f.Decode(&c, f.Fallback)
			}
		}
		for _, column := range derived {
			derive(&c, column, rowNum)
		}

		if c.ID != "" && seenIDs[c.ID] {
			warnings = append(warnings, Warning{Row: rowNum, Column: schema.ID, Value: c.ID})
			c.ID = ""
		}
		if c.ID == "" {
			c.ID = legacyID(rowNum, c)
		}
		seenIDs[c.ID] = true

		cards = append(cards, c)
	}
	return cards, warnings
}

// derive fills a column the file predates. Ids are assigned after dedupe.
func derive(c *models.CreditCard, column string, rowNum int) {
	switch column {
	case schema.FeeDueMonth:
		c.FeeDueMonth = c.Expiry.Month
	case schema.SortOrder:
		c.SortOrder = rowNum
	case schema.LastFeeAction:
		c.LastFeeAction = inferFeeAction(*c)
	}
}

// encodeRows renders cards in schema column order, header first.
func encodeRows(cards []models.CreditCard) [][]string {
	fields := schema.Fields()
	out := make([][]string, 0, len(cards)+1)
	out = append(out, schema.Columns())
	for i := range cards {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = f.Encode(&cards[i])
		}
		out = append(out, row)
	}
	return out
}

// inferFeeAction reconstructs the last fee action for files written before the
// label column existed. Once the column is present the stored label wins.
func inferFeeAction(c models.CreditCard) models.FeeAction {
	if c.LastFeeActionYear == 0 {
		return models.FeeActionNone
	}
	switch {
	case c.FeeWaivedCount > 0 && c.FeeWaivedCount >= c.FeePaidCount:
		return models.FeeActionWaived
	case c.FeePaidCount > 0:
		return models.FeeActionPaid
	}
	return models.FeeActionNone
}

func legacyID(rowNum int, c models.CreditCard) string {
	name := fmt.Sprintf("%d|%s|%s|%s", rowNum, c.Bank, c.CardName, c.Last4)
	return uuid.NewSHA1(legacyIDSpace, []byte(name)).String()
}
