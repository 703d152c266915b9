package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// LocalizedText maps a language code to a translated string. Stored as
// JSONB when the catalog is database-backed.
type LocalizedText map[string]string

// Scan implements the sql.Scanner interface
func (t *LocalizedText) Scan(value interface{}) error {
	if value == nil {
		*t = make(LocalizedText)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	temp := make(map[string]string)
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return err
	}

	*t = temp
	return nil
}

// Value implements the driver.Valuer interface
func (t LocalizedText) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return json.Marshal(t)
}

// In returns the text for lang, falling back to Arabic and then to any
// available translation.
func (t LocalizedText) In(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t["ar"]; ok && s != "" {
		return s
	}
	for _, s := range t {
		if s != "" {
			return s
		}
	}
	return ""
}

// StringList is an ordered list of landmark identifiers stored as JSONB.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	var temp []string
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return err
	}

	*l = temp
	return nil
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}
