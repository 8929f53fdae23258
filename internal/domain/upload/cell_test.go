//go:build unit

package upload_test

import (
	"encoding/json"
	"testing"

	"ops-console/internal/domain/upload"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberCell(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		c, err := upload.ParseNumberCell("42")
		require.NoError(t, err)
		n, ok := c.Int()
		assert.True(t, ok)
		assert.Equal(t, int64(42), n)
	})

	t.Run("decimal keeps precision", func(t *testing.T) {
		c, err := upload.ParseNumberCell("10.50")
		require.NoError(t, err)
		d, ok := c.Decimal()
		assert.True(t, ok)
		assert.True(t, d.Equal(decimal.RequireFromString("10.5")))
	})

	t.Run("empty input yields empty cell", func(t *testing.T) {
		c, err := upload.ParseNumberCell("   ")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := upload.ParseNumberCell("abc")
		assert.ErrorIs(t, err, upload.ErrNotANumber)
	})

	t.Run("negative allowed by the plain parser", func(t *testing.T) {
		c, err := upload.ParseNumberCell("-3")
		require.NoError(t, err)
		n, _ := c.Int()
		assert.Equal(t, int64(-3), n)
	})
}

func TestParseNonNegativeNumberCell(t *testing.T) {
	t.Run("rejects negative", func(t *testing.T) {
		_, err := upload.ParseNonNegativeNumberCell("-1")
		assert.ErrorIs(t, err, upload.ErrNegativeValue)
	})

	t.Run("zero passes", func(t *testing.T) {
		c, err := upload.ParseNonNegativeNumberCell("0")
		require.NoError(t, err)
		n, _ := c.Int()
		assert.Equal(t, int64(0), n)
	})

	t.Run("empty passes through", func(t *testing.T) {
		c, err := upload.ParseNonNegativeNumberCell("")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})
}

func TestParseBoolCell(t *testing.T) {
	t.Run("accepts case-insensitive literals", func(t *testing.T) {
		for _, raw := range []string{"true", "TRUE", "True", "false", "FALSE", "False"} {
			_, err := upload.ParseBoolCell(raw)
			assert.NoError(t, err, raw)
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, raw := range []string{"", "1", "0", "yes", "no", "t"} {
			_, err := upload.ParseBoolCell(raw)
			assert.ErrorIs(t, err, upload.ErrNotABoolean, raw)
		}
	})
}

func TestCellEqual(t *testing.T) {
	t.Run("numbers compare by canonical form", func(t *testing.T) {
		a, _ := upload.ParseNumberCell("10.50")
		b, _ := upload.ParseNumberCell("10.5")
		assert.True(t, a.Equal(b))
	})

	t.Run("empty equals empty only", func(t *testing.T) {
		assert.True(t, upload.EmptyCell().Equal(upload.EmptyCell()))
		assert.False(t, upload.EmptyCell().Equal(upload.IntCell(0)))
		assert.False(t, upload.TextCell("").Equal(upload.EmptyCell()))
	})

	t.Run("zero value cell is empty", func(t *testing.T) {
		var c upload.Cell
		assert.True(t, c.IsEmpty())
	})

	t.Run("bool and text cross-kind comparison uses rendering", func(t *testing.T) {
		assert.True(t, upload.BoolCell(true).Equal(upload.TextCell("true")))
		assert.False(t, upload.BoolCell(false).Equal(upload.TextCell("no")))
	})
}

func TestCellMarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]upload.Cell{
		"n": upload.IntCell(5),
		"b": upload.BoolCell(true),
		"t": upload.TextCell("percent"),
		"e": upload.EmptyCell(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":5,"b":true,"t":"percent","e":null}`, string(b))
}

func TestCellInt(t *testing.T) {
	t.Run("rounds to nearest", func(t *testing.T) {
		c, _ := upload.ParseNumberCell("4999.6")
		n, ok := c.Int()
		assert.True(t, ok)
		assert.Equal(t, int64(5000), n)
	})

	t.Run("non-number has no int", func(t *testing.T) {
		_, ok := upload.TextCell("5").Int()
		assert.False(t, ok)
	})
}
