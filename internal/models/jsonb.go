package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB maps a jsonb column onto a plain map. Used for
// Booking.PaymentDetails, which accumulates gateway identifiers across
// the order-create and verify steps.
type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	return string(b), err
}

func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, j)
}

// Merge returns a copy of j with patch applied on top. The receiver is
// left untouched so callers can build a guarded UPDATE from it.
func (j JSONB) Merge(patch map[string]any) JSONB {
	merged := make(JSONB, len(j)+len(patch))
	for k, v := range j {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
