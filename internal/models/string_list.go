package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList holds cuisines. Documents written by older clients stored a
// single comma separated string, so decoding accepts both shapes.
type StringList []string

// ParseStringList reads a form value that is either a JSON array of strings
// or a comma separated list.
func ParseStringList(raw string) (StringList, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StringList{}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var values []string
		if err := json.Unmarshal([]byte(trimmed), &values); err != nil {
			return nil, fmt.Errorf("cuisines must be an array of strings")
		}
		return normalizeList(values), nil
	}
	return normalizeList(strings.Split(trimmed, ",")), nil
}

// normalizeList trims entries, drops empties and removes case-insensitive
// duplicates while keeping the first spelling.
func normalizeList(values []string) StringList {
	seen := map[string]struct{}{}
	out := make(StringList, 0, len(values))
	for _, v := range values {
		name := strings.TrimSpace(v)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*s = nil
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*s = normalizeList(values)
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*s = normalizeList(strings.Split(value, ","))
		return nil
	default:
		return fmt.Errorf("cannot decode %s into StringList", t)
	}
}

// MarshalBSONValue always stores an array.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s == nil {
		return bson.MarshalValue([]string{})
	}
	return bson.MarshalValue([]string(s))
}
