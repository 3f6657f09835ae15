package migration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vtcwoerden/materiaal-api/internal/domain"
)

// legacyRecord is one entry of the old export file. Field names follow the
// legacy JSON keys.
type legacyRecord struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    flexInt  `json:"quantity"`
	Owner       string   `json:"owner"`
	Condition   string   `json:"condition"`
	Location    string   `json:"location"`
	Comments    string   `json:"comments"`
	Photos      []string `json:"photos"`
	CreatedAt   string   `json:"created_at"`
}

// flexInt tolerates the legacy export's loose typing, where quantities appear
// as numbers, numeric strings, or junk. Unparseable values become zero and are
// floored to one later.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(int(n))
	return nil
}

// parseLegacyFile validates and decodes a legacy export. Validation is
// all-or-nothing: the root must be a JSON array, every element an object, and
// every record must carry a name. The first violation aborts the whole parse
// with its record index, before anything is written.
func parseLegacyFile(data []byte) ([]legacyRecord, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: legacy data is not a JSON array", domain.ErrInvalidInput)
	}
	records := make([]legacyRecord, 0, len(raws))
	for i, raw := range raws {
		var rec legacyRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d is not an object", domain.ErrInvalidInput, i)
		}
		rec.Name = strings.TrimSpace(rec.Name)
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %d has no name", domain.ErrInvalidInput, i)
		}
		records = append(records, rec)
	}
	return records, nil
}
