package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// CacheKey derives the cache key for a request: a hash over the input text,
// the provider hint and the sorted context data, so identical requests
// collide regardless of map iteration order.
func CacheKey(input, provider string, contextData map[string]any) string {
	h := sha256.New()
	h.Write([]byte(input))
	h.Write([]byte{0})
	h.Write([]byte(provider))
	h.Write([]byte{0})

	keys := make([]string, 0, len(contextData))
	for k := range contextData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		value, err := json.Marshal(contextData[k])
		if err != nil {
			value = []byte("?")
		}
		h.Write(value)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
