package domain

import "encoding/json"

// EncodeList serializes a list-valued cell (approved suppliers, alternative
// materials) as a JSON array so consumers can parse it without bespoke
// tooling. An empty list encodes as the empty string, the table's NULL.
func EncodeList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	payload, err := json.Marshal(values)
	if err != nil {
		// []string cannot fail to marshal; keep the NULL convention anyway.
		return ""
	}
	return string(payload)
}

// DecodeList parses a JSON-array cell back into its values. Empty cells decode
// to nil.
func DecodeList(cell string) ([]string, error) {
	if cell == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(cell), &out); err != nil {
		return nil, err
	}
	return out, nil
}
