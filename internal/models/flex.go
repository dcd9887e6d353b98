package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// The SPA posts identifiers and edited form values as strings ("SpaceId": "5",
// "price": "120"), so request payloads accept either a JSON number or a quoted one.

type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("models: invalid integer %s", b)
	}
	*f = FlexInt(v)
	return nil
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("models: invalid number %s", b)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexString accepts a string or a bare number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("models: invalid string %s", b)
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	*f = FlexString(strings.TrimSpace(string(b)))
	return nil
}

func unquote(b []byte) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
}
