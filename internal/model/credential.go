package model

import (
	"fmt"
	"strings"
)

// Credential identifies one VPS instance at the billing provider.
type Credential struct {
	VEID   string `json:"veid" yaml:"veid"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

// ParseCredentials parses a `veid:api_key[;veid:api_key...]` list.
// Entry order is preserved; it is the report display order.
func ParseCredentials(s string) ([]Credential, error) {
	var creds []Credential
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		veid, key, ok := strings.Cut(entry, ":")
		veid = strings.TrimSpace(veid)
		key = strings.TrimSpace(key)
		if !ok || veid == "" || key == "" {
			return nil, fmt.Errorf("malformed credential entry %q: want veid:api_key", entry)
		}
		creds = append(creds, Credential{VEID: veid, APIKey: key})
	}
	return creds, nil
}
