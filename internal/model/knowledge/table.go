package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultCorpus []byte

var (
	ErrEmptyTable    = errors.New("knowledge table has no entries")
	ErrEmptyAnswer   = errors.New("knowledge entry has no answer")
	ErrEmptyKeywords = errors.New("knowledge entry has no keywords")
)

// Table is the ordered FAQ corpus. It is read-only once built.
type Table struct {
	entries []Entry
}

// NewTable validates entries and returns a table owning normalized copies of them.
// Keywords are trimmed and lowercased; blank keywords are dropped.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	items := make([]Entry, 0, len(entries))
	for i, entry := range entries {
		answer := strings.TrimSpace(entry.Answer)
		if answer == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i, entry.Question, ErrEmptyAnswer)
		}

		keywords := make([]string, 0, len(entry.Keywords))
		for _, kw := range entry.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("entry %d (%q): %w", i, entry.Question, ErrEmptyKeywords)
		}

		items = append(items, Entry{
			Question: strings.TrimSpace(entry.Question),
			Answer:   answer,
			Keywords: keywords,
		})
	}

	return &Table{entries: items}, nil
}

// Parse builds a table from a YAML list of entries.
func Parse(data []byte) (*Table, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode knowledge yaml: %w", err)
	}
	return NewTable(entries)
}

// Load reads a YAML knowledge file. An empty path yields the built-in corpus.
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultCorpus)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in site FAQ.
func Default() *Table {
	table, err := Parse(defaultCorpus)
	if err != nil {
		panic(fmt.Sprintf("knowledge: embedded corpus is invalid: %v", err))
	}
	return table
}

// FindMatch returns the first entry, in table order, that has a keyword
// occurring anywhere in the lowercased utterance.
func (t *Table) FindMatch(utterance string) (Entry, bool) {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	if normalized == "" {
		return Entry{}, false
	}

	for _, entry := range t.entries {
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, kw) {
				return entry.clone(), true
			}
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the table in order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, entry := range t.entries {
		out[i] = entry.clone()
	}
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
