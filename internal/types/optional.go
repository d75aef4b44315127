package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptionalInt is an integer field that may be absent. Clients send these as
// numbers, as numeric strings from form inputs, or as "" / null when unset.
type OptionalInt struct {
	value *int
}

// IntValue returns a set OptionalInt
func IntValue(v int) OptionalInt {
	return OptionalInt{value: &v}
}

// Ptr returns the value, or nil when unset
func (o OptionalInt) Ptr() *int {
	if o.value == nil {
		return nil
	}
	v := *o.value
	return &v
}

func (o OptionalInt) IsSet() bool {
	return o.value != nil
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		o.value = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			o.value = nil
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		o.value = &v
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%s is not a whole number", string(data))
	}
	o.value = &v
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if o.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.value)
}
