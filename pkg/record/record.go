// Package record implements open-ended JSON records: decoding, shallow merging and id
// normalization.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"strconv"
	"strings"
)

// Record is an open-ended mapping from field name to value.
type Record map[string]any

// Clone returns a shallow copy of r. The copy of a nil record is an empty record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	maps.Copy(c, r)
	return c
}

// Merge returns a new record holding the fields of base overwritten by the fields of patch.
// Neither argument is modified.
func Merge(base, patch Record) Record {
	merged := make(Record, len(base)+len(patch))
	maps.Copy(merged, base)
	maps.Copy(merged, patch)
	return merged
}

// Decode reads one JSON object. Numbers are kept as json.Number so that integers of any size
// survive the round trip. An empty body and a JSON null both decode to an empty record.
func Decode(r io.Reader) (Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, nil
		}
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// DecodeList reads a JSON array of objects, see Decode.
func DecodeList(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var list []Record
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("decode record list: %w", err)
	}
	for i, rec := range list {
		if rec == nil {
			return nil, fmt.Errorf("decode record list: element %d is null", i)
		}
	}
	return list, nil
}

// NormalizeID converts an id value to its canonical int64 form. Integers, integral floats,
// json.Number and numeric strings are accepted, so "7", "7.0", 7.0 and 7 all denote the same id.
func NormalizeID(v any) (int64, bool) {
	switch id := v.(type) {
	case int:
		return int64(id), true
	case int32:
		return int64(id), true
	case int64:
		return id, true
	case uint32:
		return int64(id), true
	case float64:
		return floatToID(id)
	case json.Number:
		return stringToID(id.String())
	case string:
		return stringToID(id)
	default:
		return 0, false
	}
}

func stringToID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToID(f)
}

func floatToID(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}
