// Package minerr provides the error message table used to render error pages.
//
// The table is a JSON document of the form
//
//	{"errors": {"<namespace>": {"<code>": "<message>"}}}
//
// It is read from disk the first time a message is looked up and kept for the
// rest of the run.
package minerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	// ErrNoSource is returned when a table has neither a path nor inline messages
	ErrNoSource = errors.New("no error table configured")

	// ErrNotFound is returned when a namespace/code pair has no message
	ErrNotFound = errors.New("error message not found")
)

type document struct {
	Errors map[string]map[string]string `json:"errors"`
}

// Table maps namespace and code to an error message
type Table struct {
	path   string
	once   sync.Once
	errors map[string]map[string]string
	err    error
}

// NewTable creates a table that loads path on first use
func NewTable(path string) *Table {
	return &Table{path: path}
}

// NewTableFromMap creates a table from messages already in memory
func NewTableFromMap(messages map[string]map[string]string) *Table {
	t := &Table{errors: messages}
	t.once.Do(func() {})
	return t
}

func (t *Table) load() {
	if t.path == "" {
		t.err = ErrNoSource
		return
	}
	data, err := os.ReadFile(t.path)
	if err != nil {
		t.err = fmt.Errorf("failed to read error table: %w", err)
		return
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.err = fmt.Errorf("failed to parse error table %s: %w", t.path, err)
		return
	}
	t.errors = doc.Errors
}

// Lookup returns the message for namespace and code. An empty namespace looks
// the code up among the top level entries of every namespace.
func (t *Table) Lookup(namespace, code string) (string, error) {
	if t == nil {
		return "", ErrNoSource
	}
	t.once.Do(t.load)
	if t.err != nil {
		return "", t.err
	}

	if namespace == "" {
		for _, codes := range t.errors {
			if msg, ok := codes[code]; ok {
				return msg, nil
			}
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	msg, ok := t.errors[namespace][code]
	if !ok {
		return "", fmt.Errorf("%w: %s:%s", ErrNotFound, namespace, code)
	}
	return msg, nil
}
