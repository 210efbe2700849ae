// Package commands holds the app command table: the mapping from a Google Chat
// app command ID to the text configured for it.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/samber/mo"
)

// ErrInvalidID is returned by NormalizeID for identifiers that are not integers.
var ErrInvalidID = errors.New("invalid command ID")

// NormalizeID canonicalizes a command identifier by an integer round-trip,
// so "007", " 7" and "+7" all become "7".
func NormalizeID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return n.String(), nil
}

// Table is an immutable command table. It is safe for concurrent use.
type Table struct {
	commands map[string]string
}

// New builds a table from raw entries, normalizing every key.
func New(entries map[string]string) (*Table, error) {
	commands := make(map[string]string, len(entries))
	for raw, text := range entries {
		id, err := NormalizeID(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := commands[id]; dup {
			return nil, fmt.Errorf("duplicate command ID %s (from key %q)", id, raw)
		}
		commands[id] = text
	}
	return &Table{commands: commands}, nil
}

// Empty returns a table with no commands.
func Empty() *Table {
	return &Table{commands: map[string]string{}}
}

// Load reads a JSON object of command ID -> command text from path.
// A missing file yields an error wrapping os.ErrNotExist.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading commands file %s: %w", path, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing commands file %s: %w", path, err)
	}

	t, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("commands file %s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the command text for an already normalized ID.
func (t *Table) Lookup(id string) mo.Option[string] {
	text, ok := t.commands[id]
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(text)
}

// Len returns the number of commands.
func (t *Table) Len() int { return len(t.commands) }

// IDs returns all command IDs in ascending numeric order.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.commands))
	for id := range t.commands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := new(big.Int).SetString(ids[i], 10)
		b, _ := new(big.Int).SetString(ids[j], 10)
		return a.Cmp(b) < 0
	})
	return ids
}
