package loader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Survey exports disagree on whether codes are numbers or strings; these
// types accept both.

type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s, null := unquote(b)
	if null || s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = flexInt(v)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s, null := unquote(b)
	if null || s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = flexFloat(v)
	return nil
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s, null := unquote(b)
	if null {
		*f = ""
		return nil
	}
	*f = flexString(s)
	return nil
}

func unquote(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", true
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		s, err := strconv.Unquote(string(b))
		if err == nil {
			return strings.TrimSpace(s), false
		}
		return string(b[1 : len(b)-1]), false
	}
	return string(b), false
}
