package dto

import (
	"encoding/json"
	"fmt"
)

// StringOrList accepts either a single string (possibly comma separated) or a list of strings.
type StringOrList []string

func (c *StringOrList) UnmarshalJSON(data []byte) error {
	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = StringOrList{s}
		return nil
	}

	var l []string
	if err := json.Unmarshal(data, &l); err == nil {
		*c = l
		return nil
	}

	return fmt.Errorf("value must be either a string or a list of strings")
}

func (c StringOrList) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(c))
}
