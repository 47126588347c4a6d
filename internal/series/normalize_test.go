package series

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"CoinScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCandles_CoercesStringsAndSorts(t *testing.T) {
	raw := []model.RawCandle{
		{Timestamp: float64(1704153600000), Open: "101.5", High: "103", Low: "100", Close: "102.25", Volume: "12.5"},
		{Timestamp: "2024-01-01T00:00:00Z", Open: 100.0, High: 102.0, Low: 99.0, Close: 101.0, Volume: 10.0},
		{Timestamp: json.Number("1704240000000"), Open: json.Number("102"), High: "104", Low: "101", Close: "103", Volume: 8},
	}

	s, err := NormalizeCandles(raw)
	require.NoError(t, err)
	require.Len(t, s, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s[0].Time)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), s[1].Time)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), s[2].Time)
	assert.InDelta(t, 102.25, s[1].Close, 1e-12)
	assert.InDelta(t, 12.5, s[1].Volume, 1e-12)
	assert.InDelta(t, 8.0, s[2].Volume, 1e-12)
}

func TestNormalizeCandles_DuplicateKeepsFirstInInputOrder(t *testing.T) {
	raw := []model.RawCandle{
		{Timestamp: "2024-01-02", Open: "1", High: "1", Low: "1", Close: "1", Volume: "1"},
		{Timestamp: "2024-01-01", Open: "5", High: "5", Low: "5", Close: "5", Volume: "5"},
		{Timestamp: "2024-01-02", Open: "2", High: "2", Low: "2", Close: "2", Volume: "2"},
	}

	s, err := NormalizeCandles(raw)
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, 5.0, s[0].Close)
	assert.Equal(t, 1.0, s[1].Close)
}

func TestNormalizeCandles_GapsPassThrough(t *testing.T) {
	raw := []model.RawCandle{
		{Timestamp: "2024-01-01", Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
		{Timestamp: "2024-01-05", Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
	}
	s, err := NormalizeCandles(raw)
	require.NoError(t, err)
	assert.Len(t, s, 2)
}

func TestNormalizeCandles_ParseErrors(t *testing.T) {
	good := model.RawCandle{Timestamp: "2024-01-01", Open: "1", High: "1", Low: "1", Close: "1", Volume: "1"}

	tests := []struct {
		name  string
		edit  func(r *model.RawCandle)
		field string
		want  error
	}{
		{"missing close", func(r *model.RawCandle) { r.Close = nil }, "close", ErrMissingField},
		{"empty volume", func(r *model.RawCandle) { r.Volume = "  " }, "volume", ErrMissingField},
		{"garbage high", func(r *model.RawCandle) { r.High = "abc" }, "high", ErrNotNumeric},
		{"bool open", func(r *model.RawCandle) { r.Open = true }, "open", ErrNotNumeric},
		{"bad timestamp", func(r *model.RawCandle) { r.Timestamp = "yesterday" }, "timestamp", ErrBadTimestamp},
		{"missing timestamp", func(r *model.RawCandle) { r.Timestamp = nil }, "timestamp", ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := good
			tt.edit(&bad)
			s, err := NormalizeCandles([]model.RawCandle{good, bad})
			require.Error(t, err)
			assert.Nil(t, s)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, 1, pe.Index)
			assert.Equal(t, tt.field, pe.Field)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeCandles_DoesNotMutateInput(t *testing.T) {
	raw := []model.RawCandle{
		{Timestamp: "2024-01-02", Open: "1", High: "1", Low: "1", Close: "1", Volume: "1"},
		{Timestamp: "2024-01-01", Open: "2", High: "2", Low: "2", Close: "2", Volume: "2"},
	}
	_, err := NormalizeCandles(raw)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", raw[0].Timestamp)
}

func TestNormalizeSentiment(t *testing.T) {
	raw := []model.RawSentiment{
		{Timestamp: "1704240000", Value: "20", Classification: "Extreme Fear"},
		{Timestamp: "2024-01-01", Value: 50.0},
		{Timestamp: float64(1704153600), Value: "30"},
		{Timestamp: "2024-01-02T18:00:00Z", Value: "90"},
	}

	s, err := NormalizeSentiment(raw)
	require.NoError(t, err)
	require.Len(t, s, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s[0].Date)
	assert.Equal(t, "Neutral", s[0].Classification)
	assert.Equal(t, 30, s[1].Value, "first reading of the day wins")
	assert.Equal(t, "Fear", s[1].Classification)
	assert.Equal(t, 20, s[2].Value)
	assert.Equal(t, "Extreme Fear", s[2].Classification)
}

func TestNormalizeSentiment_RejectsOutOfRange(t *testing.T) {
	for _, v := range []any{"101", -1.0, "45.5", "x"} {
		_, err := NormalizeSentiment([]model.RawSentiment{{Timestamp: "2024-01-01", Value: v}})
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "value %v", v)
		assert.Equal(t, "value", pe.Field)
	}
}

func TestClone(t *testing.T) {
	s := model.Series{{Close: 1}, {Close: 2}}
	c := Clone(s)
	c[0].Close = 99
	assert.Equal(t, 1.0, s[0].Close)
	assert.Nil(t, Clone(nil))
}
