package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Object is a move object with its top-level fields left raw for the
// Decode helpers.
type Object struct {
	ID     string
	Type   string
	Fields map[string]json.RawMessage
}

type objectResponse struct {
	Data *struct {
		ObjectID string `json:"objectId"`
		Type     string `json:"type"`
		Content  *struct {
			DataType string                     `json:"dataType"`
			Type     string                     `json:"type"`
			Fields   map[string]json.RawMessage `json:"fields"`
		} `json:"content"`
	} `json:"data"`
}

func (r objectResponse) object() (Object, bool) {
	if r.Data == nil || r.Data.Content == nil || r.Data.Content.DataType != "moveObject" {
		return Object{}, false
	}
	typ := r.Data.Content.Type
	if typ == "" {
		typ = r.Data.Type
	}
	return Object{ID: r.Data.ObjectID, Type: typ, Fields: r.Data.Content.Fields}, true
}

// Field returns the raw value of name, or nil.
func (o Object) Field(name string) json.RawMessage {
	return o.Fields[name]
}

var errNullField = errors.New("field is null")

// DecodeBytes turns a move vector<u8> into a string. The node renders byte
// vectors as arrays of numbers; plain strings pass through unchanged.
func DecodeBytes(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", errNullField
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var nums []json.Number
	if err := json.Unmarshal(raw, &nums); err != nil {
		return "", fmt.Errorf("expected byte vector: %w", err)
	}
	buf := make([]byte, len(nums))
	for i, n := range nums {
		b, err := strconv.ParseUint(n.String(), 10, 8)
		if err != nil {
			return "", fmt.Errorf("byte %d out of range: %w", i, err)
		}
		buf[i] = byte(b)
	}
	return string(buf), nil
}

// DecodeU64 parses a u64 rendered as a decimal string or number. Wrappers
// such as Balance ({"fields":{"value":"5"}}) are unwrapped.
func DecodeU64(raw json.RawMessage) (uint64, error) {
	if isNull(raw) {
		return 0, errNullField
	}
	if inner, ok := unwrapValue(raw); ok {
		return DecodeU64(inner)
	}

	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected u64: %w", err)
	}
	return v, nil
}

// DecodeOptionalAddress reads an Option<address>, which the node renders as
// null, a bare string, or {"fields":{"value":...}}.
func DecodeOptionalAddress(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	if inner, ok := unwrapValue(raw); ok {
		return DecodeOptionalAddress(inner)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var vec []string
	if err := json.Unmarshal(raw, &vec); err == nil {
		if len(vec) == 0 {
			return "", nil
		}
		return vec[0], nil
	}
	return "", fmt.Errorf("expected optional address, got %s", raw)
}

// DecodeBool accepts a JSON boolean.
func DecodeBool(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, fmt.Errorf("expected bool: %w", err)
	}
	return b, nil
}

// DecodeVecMap flattens a VecMap<vector<u8>, u64> into a plain map.
func DecodeVecMap(raw json.RawMessage) (map[string]uint64, error) {
	out := map[string]uint64{}
	if isNull(raw) {
		return out, nil
	}

	var vm struct {
		Fields struct {
			Contents []struct {
				Fields struct {
					Key   json.RawMessage `json:"key"`
					Value json.RawMessage `json:"value"`
				} `json:"fields"`
			} `json:"contents"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(raw, &vm); err != nil {
		return nil, fmt.Errorf("expected vec_map: %w", err)
	}

	for i, entry := range vm.Fields.Contents {
		key, err := DecodeBytes(entry.Fields.Key)
		if err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i, err)
		}
		value, err := DecodeU64(entry.Fields.Value)
		if err != nil {
			return nil, fmt.Errorf("entry %d value: %w", i, err)
		}
		out[key] = value
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func unwrapValue(raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var wrapper struct {
		Fields struct {
			Value json.RawMessage `json:"value"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil || wrapper.Fields.Value == nil {
		return nil, false
	}
	return wrapper.Fields.Value, true
}
