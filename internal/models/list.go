package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringList stores a list of short values as comma-separated text so it
// survives MySQL columns without a JSON type requirement.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if s == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

// Contains reports whether the list holds v (case-insensitive).
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
