// Package library implements the static rule library consulted before the
// model: a fixed, ordered table of topic -> {keyword phrases, canned answer}.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// weakPassMaxTokens bounds when single-word keyword hits are trusted.
// Longer questions that merely contain a common word fall through to the model.
const weakPassMaxTokens = 3

// Entry is one rule: a topic with its trigger phrases and canned answer.
type Entry struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
	Answer   string   `json:"answer"`
}

// Library is the immutable rule table, loaded once at startup.
type Library struct {
	entries []Entry
}

// Load reads the rule file. The file is a JSON array so entry order is
// deterministic; the first matching entry wins on ties. Load failure is a
// startup-fatal configuration error for the caller.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Library from raw JSON.
func Parse(data []byte) (*Library, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse library file: %w", err)
	}
	return New(entries), nil
}

// New builds a Library over the given entries, keeping their order.
// Keywords are lower-cased once here so Lookup only normalizes the question.
func New(entries []Entry) *Library {
	for i := range entries {
		for j, kw := range entries[i].Keywords {
			entries[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	return &Library{entries: entries}
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.entries)
}

// Lookup runs the two-pass match and returns the canned answer, or ok=false
// when no rule applies and the caller should fall through to the model.
//
// Pass 1 (strong): any multi-word keyword phrase contained in the question
// returns its entry immediately. Long, specific phrases are trusted
// unconditionally.
//
// Pass 2 (weak): only for questions of at most weakPassMaxTokens tokens, any
// keyword match returns its entry.
func (l *Library) Lookup(question string) (answer string, ok bool) {
	q := strings.ToLower(question)

	for _, entry := range l.entries {
		for _, kw := range entry.Keywords {
			if len(strings.Fields(kw)) > 1 && strings.Contains(q, kw) {
				return entry.Answer, true
			}
		}
	}

	if len(strings.Fields(q)) <= weakPassMaxTokens {
		for _, entry := range l.entries {
			for _, kw := range entry.Keywords {
				if strings.Contains(q, kw) {
					return entry.Answer, true
				}
			}
		}
	}

	return "", false
}
