package collector

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"CoinScope/internal/model"
	"CoinScope/internal/series"

	"github.com/parquet-go/parquet-go"
)

// ParquetCandle is the on-disk row of a candle parquet file, timestamps in
// epoch milliseconds.
type ParquetCandle struct {
	Timestamp int64   `parquet:"t"`
	Open      float64 `parquet:"o"`
	High      float64 `parquet:"h"`
	Low       float64 `parquet:"l"`
	Close     float64 `parquet:"c"`
	Volume    float64 `parquet:"v"`
}

// candleExts is the lookup order for <symbol>_<interval> files.
var candleExts = []string{".parquet", ".csv", ".json"}

// FileSource reads candles from <Dir>/<SYMBOL>_<interval>.{parquet,csv,json}
// and sentiment from a single JSON or CSV file.
type FileSource struct {
	Dir           string
	SentimentPath string
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Candles(_ context.Context, symbol, interval string) (model.Series, error) {
	base := filepath.Join(f.Dir, fmt.Sprintf("%s_%s", symbol, interval))
	for _, ext := range candleExts {
		path := base + ext
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return ReadCandleFile(path)
	}
	return nil, fmt.Errorf("%w: %s.{parquet,csv,json}", ErrNoData, base)
}

func (f *FileSource) Sentiment(_ context.Context) (model.SentimentSeries, error) {
	if f.SentimentPath == "" {
		return nil, fmt.Errorf("%w: no sentiment file configured", ErrNoData)
	}
	return ReadSentimentFile(f.SentimentPath)
}

// ReadCandleFile loads and normalizes a candle file, picking the format from
// the extension.
func ReadCandleFile(path string) (model.Series, error) {
	var raw []model.RawCandle
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		rows, err := parquet.ReadFile[ParquetCandle](path)
		if err != nil {
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
		raw = make([]model.RawCandle, len(rows))
		for i, r := range rows {
			raw[i] = model.RawCandle{Timestamp: r.Timestamp, Open: r.Open, High: r.High, Low: r.Low, Close: r.Close, Volume: r.Volume}
		}
	case ".csv":
		records, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		raw = make([]model.RawCandle, len(records))
		for i, rec := range records {
			raw[i] = model.RawCandle{
				Timestamp: field(rec, "timestamp", "time", "date"),
				Open:      field(rec, "open"),
				High:      field(rec, "high"),
				Low:       field(rec, "low"),
				Close:     field(rec, "close"),
				Volume:    field(rec, "volume"),
			}
		}
	case ".json":
		if err := readJSON(path, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported candle file %s", path)
	}

	s, err := series.NormalizeCandles(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteCandleFile writes s as a parquet file readable by ReadCandleFile.
func WriteCandleFile(path string, s model.Series) error {
	rows := make([]ParquetCandle, len(s))
	for i, c := range s {
		rows[i] = ParquetCandle{
			Timestamp: c.Time.UnixMilli(),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
		}
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}

// ReadSentimentFile loads a Fear & Greed history from JSON (either a bare
// array or an object with a "data" array) or CSV.
func ReadSentimentFile(path string) (model.SentimentSeries, error) {
	var raw []model.RawSentiment
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		raw = make([]model.RawSentiment, len(records))
		for i, rec := range records {
			ts := field(rec, "timestamp", "date")
			val := field(rec, "value")
			raw[i] = model.RawSentiment{Timestamp: ts, Value: val}
			if cls, ok := rec["value_classification"]; ok {
				raw[i].Classification = cls
			}
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			var wrapped struct {
				Data []model.RawSentiment `json:"data"`
			}
			if err := decodeJSON(data, &wrapped); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			raw = wrapped.Data
		} else if err := decodeJSON(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported sentiment file %s", path)
	}

	s, err := series.NormalizeSentiment(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := decodeJSON(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// decodeJSON keeps numbers as json.Number so large epoch values survive.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// readCSV returns one map per data row keyed by the lower-cased header.
func readCSV(path string) ([]map[string]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var out []map[string]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// field returns the first present column among names, or nil so that the
// normalizer reports it as missing.
func field(rec map[string]string, names ...string) any {
	for _, n := range names {
		if v, ok := rec[n]; ok && v != "" {
			return v
		}
	}
	return nil
}
