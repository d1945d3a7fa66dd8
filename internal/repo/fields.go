package repo

import (
	"strconv"

	"bearpaw/internal/store"
)

// Field coercion for schemaless documents. The store enforces no schema, so
// records written by older clients may carry numbers as strings or omit
// fields entirely; everything coerces to a zero value or nil rather than
// failing the read.

func fieldString(f store.Fields, key string) string {
	s, _ := f[key].(string)
	return s
}

func fieldStringPtr(f store.Fields, key string) *string {
	s, ok := f[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func fieldFloat(f store.Fields, key string) (float64, bool) {
	switch v := f[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func fieldFloatPtr(f store.Fields, key string) *float64 {
	if n, ok := fieldFloat(f, key); ok {
		return &n
	}
	return nil
}

func fieldInt(f store.Fields, key string) (int, bool) {
	if n, ok := fieldFloat(f, key); ok {
		return int(n), true
	}
	return 0, false
}

func fieldIntPtr(f store.Fields, key string) *int {
	if n, ok := fieldInt(f, key); ok {
		return &n
	}
	return nil
}

func fieldBool(f store.Fields, key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
