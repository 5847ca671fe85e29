// Package core holds the notehub domain: notes, pages and the repository contract.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PerPage is the fixed page size requested from the API.
const PerPage = 12

// Tag is the fixed-enum category label on a note.
type Tag string

const (
	TagTodo     Tag = "Todo"
	TagWork     Tag = "Work"
	TagPersonal Tag = "Personal"
	TagMeeting  Tag = "Meeting"
	TagShopping Tag = "Shopping"
)

var allTags = []Tag{TagTodo, TagWork, TagPersonal, TagMeeting, TagShopping}

// Tags returns every valid tag in display order.
func Tags() []Tag {
	out := make([]Tag, len(allTags))
	copy(out, allTags)
	return out
}

// Valid reports whether t is one of the fixed tags.
func (t Tag) Valid() bool {
	for _, known := range allTags {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTag resolves s to a Tag, ignoring case.
func ParseTag(s string) (Tag, error) {
	for _, known := range allTags {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, nil
		}
	}
	return "", &Error{Kind: KindValidation, Op: "parse tag", Err: fmt.Errorf("%w: %q", ErrInvalidTag, s)}
}

// Note is a user-authored record. It is never edited in place: it is created
// whole or removed.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       Tag       `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// UnmarshalJSON accepts the older "date" field as the creation time.
func (n *Note) UnmarshalJSON(data []byte) error {
	type plain Note
	var aux struct {
		plain
		Date *time.Time `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = Note(aux.plain)
	if n.CreatedAt.IsZero() && aux.Date != nil {
		n.CreatedAt = *aux.Date
	}
	return nil
}

// NotePage is one page of a list/search result, exactly as the API returned it.
type NotePage struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
	Notes      []Note `json:"notes"`
}

// Contains reports whether a note with the given id is on the page.
func (p NotePage) Contains(id string) bool {
	for _, n := range p.Notes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// CreateNoteParams is the body of a create request.
type CreateNoteParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     Tag    `json:"tag"`
}
