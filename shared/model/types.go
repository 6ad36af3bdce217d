package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a list of strings as a JSON text column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}

	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string slice: %w", err)
	}

	return string(encoded), nil
}

func (s *StringSlice) Scan(src any) error {
	if src == nil {
		*s = nil

		return nil
	}

	var raw []byte
	switch value := src.(type) {
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("unsupported type for string slice: %T", src)
	}

	if len(raw) == 0 {
		*s = nil

		return nil
	}

	if err := json.Unmarshal(raw, s); err != nil {
		return fmt.Errorf("failed to decode string slice: %w", err)
	}

	return nil
}
