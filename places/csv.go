// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalize removes diacritics, lowercases and trims the string so header
// cells like "Título " and "title" compare equal.
func normalize(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// recognized header columns. Exports from different tools use different
// spellings for the same concept.
type column int

const (
	colTitle column = iota
	colNote
	colName
	colURL
)

var columnNames = map[column][]string{
	colTitle: {"title", "titulo"},
	colNote:  {"note", "nota", "notas"},
	colName:  {"name", "nombre"},
	colURL:   {"url", "link", "enlace"},
}

func columnFromHeader(s string) (column, bool) {
	ns := normalize(s)

	for col, names := range columnNames {
		for _, name := range names {
			if ns == name {
				return col, true
			}
		}
	}

	return 0, false
}

// splitLine tokenizes a CSV line. A double quote toggles the in-quotes
// state; a comma splits fields only outside quotes. Quote characters are
// not part of the field value.
func splitLine(line string) []string {
	fields := make([]string, 0, 8)
	sb := strings.Builder{}
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}

	fields = append(fields, strings.TrimSpace(sb.String()))

	return fields
}

// Blank lines and lines made only of separators carry no data.
func isBlankLine(line string) bool {
	return strings.Trim(line, ", \t\r") == ""
}

// ParseCSV parses saved-places CSV text into records. The first non-empty
// line is the header; it locates the url column and the display-name column
// (title preferred over note preferred over name). Rows missing either a
// name or a url are silently dropped.
func ParseCSV(text string) []*Record {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	columnMap := make(map[column]int)
	headerSeen := false

	var records []*Record

	for _, line := range lines {
		if isBlankLine(line) {
			continue
		}

		fields := splitLine(line)

		if !headerSeen {
			for i, cell := range fields {
				if col, ok := columnFromHeader(cell); ok {
					if _, dup := columnMap[col]; !dup {
						columnMap[col] = i
					}
				}
			}

			headerSeen = true

			// without a url column there is nothing to resolve
			if _, ok := columnMap[colURL]; !ok {
				return nil
			}

			continue
		}

		cell := func(col column) string {
			idx, ok := columnMap[col]
			if !ok || idx >= len(fields) {
				return ""
			}

			return fields[idx]
		}

		name := cell(colTitle)
		if name == "" {
			name = cell(colNote)
		}

		if name == "" {
			name = cell(colName)
		}

		url := cell(colURL)
		if name == "" || url == "" {
			continue
		}

		records = append(records, &Record{Name: name, URL: url})
	}

	return records
}
