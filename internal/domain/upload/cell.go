package upload

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotANumber    = errors.New("value is not a number")
	ErrNegativeValue = errors.New("value must not be negative")
	ErrNotABoolean   = errors.New("value must be true or false")
)

// CellKind tags the coerced value of one CSV cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellBool
	CellText
)

// Cell is a tagged union over the value types a CSV cell can coerce to.
// It replaces ad hoc string parsing scattered per upload type: each type's
// schema coerces its columns once, and diffing/rendering work on Cells.
type Cell struct {
	kind CellKind
	num  decimal.Decimal
	b    bool
	s    string
}

func EmptyCell() Cell               { return Cell{kind: CellEmpty} }
func NumberCell(d decimal.Decimal) Cell {
	return Cell{kind: CellNumber, num: d}
}
func BoolCell(b bool) Cell { return Cell{kind: CellBool, b: b} }
func TextCell(s string) Cell {
	return Cell{kind: CellText, s: s}
}

func IntCell(n int64) Cell {
	return NumberCell(decimal.NewFromInt(n))
}

func (c Cell) Kind() CellKind { return c.kind }
func (c Cell) IsEmpty() bool  { return c.kind == CellEmpty }

func (c Cell) Decimal() (decimal.Decimal, bool) {
	return c.num, c.kind == CellNumber
}

func (c Cell) Bool() (bool, bool) {
	return c.b, c.kind == CellBool
}

// Int returns the cell's number rounded to the nearest integer.
func (c Cell) Int() (int64, bool) {
	if c.kind != CellNumber {
		return 0, false
	}
	return c.num.Round(0).IntPart(), true
}

// String renders the canonical form used for diff comparison and summaries.
func (c Cell) String() string {
	switch c.kind {
	case CellEmpty:
		return ""
	case CellNumber:
		return c.num.String()
	case CellBool:
		if c.b {
			return "true"
		}
		return "false"
	default:
		return c.s
	}
}

// Equal compares canonical renderings; two empty cells are equal regardless
// of how the absence was produced.
func (c Cell) Equal(other Cell) bool {
	if c.kind == CellEmpty || other.kind == CellEmpty {
		return c.kind == other.kind
	}
	return c.String() == other.String()
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case CellEmpty:
		return []byte("null"), nil
	case CellNumber:
		return json.Marshal(json.Number(c.num.String()))
	case CellBool:
		return json.Marshal(c.b)
	default:
		return json.Marshal(c.s)
	}
}

// ParseNumberCell coerces a raw cell into a number. Empty input yields an
// empty cell, not an error.
func ParseNumberCell(raw string) (Cell, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return EmptyCell(), nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Cell{}, ErrNotANumber
	}
	return NumberCell(d), nil
}

// ParseNonNegativeNumberCell is ParseNumberCell plus a sign check.
func ParseNonNegativeNumberCell(raw string) (Cell, error) {
	c, err := ParseNumberCell(raw)
	if err != nil {
		return Cell{}, err
	}
	if d, ok := c.Decimal(); ok && d.IsNegative() {
		return Cell{}, ErrNegativeValue
	}
	return c, nil
}

// ParseBoolCell accepts only the case-insensitive literals "true"/"false".
func ParseBoolCell(raw string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return BoolCell(true), nil
	case "false":
		return BoolCell(false), nil
	default:
		return Cell{}, ErrNotABoolean
	}
}
