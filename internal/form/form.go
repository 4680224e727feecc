// Package form converts between stored list fields and the single text
// inputs the admin forms edit them with.
package form

import (
	"strings"

	"github.com/folio/internal/db"
)

// Delimiter identifies how a list field is written in its text input.
type Delimiter int

const (
	// Comma separates inline lists such as tech stacks, tags and keywords.
	Comma Delimiter = iota
	// Newline separates one-per-line lists such as galleries and features.
	Newline
)

func (d Delimiter) splitOn() string {
	if d == Newline {
		return "\n"
	}
	return ","
}

func (d Delimiter) joinWith() string {
	if d == Newline {
		return "\n"
	}
	return ", "
}

// Split trims every element, drops the empty ones and keeps the order.
// The result is never nil so it persists as an empty JSON array.
func Split(raw string, delim Delimiter) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	parts := strings.Split(normalized, delim.splitOn())
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		items = append(items, value)
	}
	return items
}

// Join renders items back into their editable text form.
func Join(items []string, delim Delimiter) string {
	return strings.Join(items, delim.joinWith())
}

// NormalizeCSV re-joins a comma separated string in canonical form.
// Every non-empty entry is kept in the order it was typed.
func NormalizeCSV(raw string) string {
	return Join(Split(raw, Comma), Comma)
}

// SplitCollaborators parses one collaborator per line as "Name | URL";
// the URL part is optional.
func SplitCollaborators(raw string) []db.Collaborator {
	lines := Split(raw, Newline)
	out := make([]db.Collaborator, 0, len(lines))
	for _, line := range lines {
		name, url, _ := strings.Cut(line, "|")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, db.Collaborator{Name: name, URL: strings.TrimSpace(url)})
	}
	return out
}

// JoinCollaborators is the inverse of SplitCollaborators.
func JoinCollaborators(items []db.Collaborator) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item.URL == "" {
			lines = append(lines, item.Name)
			continue
		}
		lines = append(lines, item.Name+" | "+item.URL)
	}
	return strings.Join(lines, "\n")
}
