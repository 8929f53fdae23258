package upload

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RowStatus classifies one preview row after validation and diffing.
type RowStatus string

const (
	StatusOK      RowStatus = "OK"
	StatusWarning RowStatus = "WARNING"
	StatusError   RowStatus = "ERROR"
)

// Values maps a field name to its coerced cell. A nil Values means "no
// value set at all": no current entity for Old, rejected row for New.
type Values map[string]Cell

// Summary renders the values as a single human-readable line, fields in
// stable order. Empty cells render as "null" so an operator can tell
// "cleared" apart from "missing column".
func (v Values) Summary() string {
	if v == nil {
		return ""
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		c := v[f]
		if c.IsEmpty() {
			parts = append(parts, f+"=null")
			continue
		}
		parts = append(parts, f+"="+c.String())
	}
	return strings.Join(parts, ", ")
}

// Equal is a field-for-field comparison of canonical renderings, with the
// null equivalence rule: an absent field equals an empty one.
func (v Values) Equal(other Values) bool {
	if v == nil || other == nil {
		return v == nil && other == nil
	}
	for f, c := range v {
		if !c.Equal(other[f]) {
			return false
		}
	}
	for f, c := range other {
		if _, ok := v[f]; !ok && !c.IsEmpty() {
			return false
		}
	}
	return true
}

// PreviewRow is the diff unit an operator reviews before committing.
type PreviewRow struct {
	RowNumber  int       `json:"rowNumber"`
	OutletID   int64     `json:"outletId"`
	ItemID     int64     `json:"itemId,omitempty"`
	CampaignID int64     `json:"campaignId,omitempty"`
	ItemLabel  string    `json:"itemLabel"`
	Old        Values    `json:"old"`
	New        Values    `json:"new"`
	OldSummary string    `json:"oldSummary"`
	NewSummary string    `json:"newSummary"`
	Status     RowStatus `json:"status"`
	Message    string    `json:"message,omitempty"`
}

// PreviewSummary tallies row statuses across one built preview.
// Total is always Valid + Warnings + Errors.
type PreviewSummary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func Summarize(rows []PreviewRow) PreviewSummary {
	var s PreviewSummary
	for _, r := range rows {
		s.Total++
		switch r.Status {
		case StatusOK:
			s.Valid++
		case StatusWarning:
			s.Warnings++
		case StatusError:
			s.Errors++
		}
	}
	return s
}

// Preview is one staged build of diffed rows awaiting operator confirmation.
// Rows are immutable once staged; AppliedAt transitions from nil to a
// timestamp exactly once, and only when Summary.Errors is zero.
type Preview struct {
	ID        uuid.UUID
	Type      Type
	Rows      []PreviewRow
	Summary   PreviewSummary
	ActorID   uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	AppliedAt *time.Time
}

// Expired reports whether the preview is logically gone. An expired preview
// must never be read, applied or reused even if still physically stored.
func (p *Preview) Expired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}
