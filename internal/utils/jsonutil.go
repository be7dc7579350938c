package utils

import "encoding/json"

// ToJSON renders v for logs; errors collapse to the empty string.
func ToJSON(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
