package form

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/folio/internal/db"
)

// CommaList decodes either a JSON array or the comma separated text input.
type CommaList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *CommaList) UnmarshalJSON(data []byte) error {
	items, err := decodeList(data, Comma)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// LineList decodes either a JSON array or one item per line of text.
type LineList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *LineList) UnmarshalJSON(data []byte) error {
	items, err := decodeList(data, Newline)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// CollaboratorList decodes either a JSON array of objects or "Name | URL"
// lines.
type CollaboratorList []db.Collaborator

// UnmarshalJSON implements json.Unmarshaler.
func (l *CollaboratorList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*l = CollaboratorList{}
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*l = SplitCollaborators(text)
	case trimmed[0] == '[':
		var items []db.Collaborator
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
	default:
		return fmt.Errorf("collaborators must be text or a list")
	}
	return nil
}

func decodeList(data []byte, delim Delimiter) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return []string{}, nil
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, err
		}
		return Split(text, delim), nil
	case trimmed[0] == '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return Split(Join(items, Newline), Newline), nil
	default:
		return nil, fmt.Errorf("list must be text or an array of strings")
	}
}
