package models

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// FlexInt decodes from a JSON number, a numeric string or null.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*f = 0
		return nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// FlexString decodes from a JSON string, number, bool or null.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*f = ""
		return nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return err
	}
	*f = FlexString(s)
	return nil
}
