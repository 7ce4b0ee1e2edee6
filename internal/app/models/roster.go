package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// RosterEntry is one identity allowed to log in.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LoadRoster reads a JSON array of roster entries.
func LoadRoster(path string) ([]RosterEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	var entries []RosterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}
	return entries, nil
}
