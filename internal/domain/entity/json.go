package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}

	result := map[string]interface{}{}
	err = json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// StringList is a list of strings stored as a JSONB array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	if result == nil {
		result = []string{}
	}
	*l = StringList(result)
	return nil
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
}
