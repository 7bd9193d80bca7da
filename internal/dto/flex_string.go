package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FlexString accepts a JSON string, number or null. Spreadsheet decoders emit amounts
// and serial dates as numbers and everything else as text. Numbers are kept in plain
// decimal notation so they are never mistaken for grouped text.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("number out of range: %s", data)
	}
	*f = FlexString(d.String())
	return nil
}

// String returns the raw text.
func (f FlexString) String() string {
	return string(f)
}
