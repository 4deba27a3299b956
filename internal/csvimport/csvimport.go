package csvimport

import (
	"encoding/csv"
	"io"
	"strings"
)

// Row maps lower-cased header names to trimmed cell values.
type Row map[string]string

// Header aliases for auto-mapping exported contact lists.
var (
	EmailAliases   = []string{"email", "e_mail", "e-mail"}
	NameAliases    = []string{"name", "hr_name"}
	CompanyAliases = []string{"company", "company_name"}
	RoleAliases    = []string{"role", "position"}
	TagAliases     = []string{"tags"}
)

// Parse reads CSV text into rows keyed by header. Headers are
// lower-cased and trimmed; cell values are trimmed. Rows shorter than
// the header are padded with empty strings. Input without at least a
// header line and one data line yields no rows.
func Parse(text string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // Allow variable fields
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(Row, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Field returns the value under the first aliased column present in
// the row. A blank cell under an earlier alias wins over a filled
// later one.
func Field(row Row, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			return v
		}
	}
	return ""
}

// SplitTags splits a semicolon-separated tag cell, dropping empties.
func SplitTags(cell string) []string {
	if cell == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(cell, ";") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
