// =============================================================================
// Backer CSV to Shopify Orders - Import Ledger
// =============================================================================
//
// Append-only file of identity keys that have already been uploaded to the
// store. The pending filter consults the ledger so that re-running the
// importer on the same export does not create duplicate orders.
//
// The file holds one JSON object per line. It is read fully at open and
// appended to after every successful upload; a missing file is an empty
// ledger. A nil *Ledger is valid and means the ledger is disabled: nothing
// is ever marked imported and nothing is written.
//
// =============================================================================

package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one imported order, one line in the ledger file.
type Entry struct {
	// Key is the identity key of the imported order.
	Key string `json:"key"`

	// OrderID is the id assigned by the store, when known.
	OrderID int64 `json:"order_id,omitempty"`

	// RunID identifies the import run that uploaded the order.
	RunID string `json:"run_id"`

	ImportedAt time.Time `json:"imported_at"`
}

// Ledger is the in-memory view of the ledger file plus the append handle
// state. Not safe for concurrent use; the upload loop is sequential.
type Ledger struct {
	path  string
	runID string
	keys  map[string]struct{}
}

// Open loads the ledger at path. A missing file yields an empty ledger; the
// file is created on the first append. An empty path disables the ledger
// entirely and returns nil, which every method accepts.
func Open(path string) (*Ledger, error) {
	if path == "" {
		return nil, nil
	}

	l := &Ledger{
		path:  path,
		runID: uuid.NewString(),
		keys:  make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("failed to parse ledger %s line %d: %w", path, line, err)
		}
		l.keys[e.Key] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", path, err)
	}

	return l, nil
}

// Contains reports whether the key was imported by this or a previous run.
func (l *Ledger) Contains(key string) bool {
	if l == nil {
		return false
	}
	_, ok := l.keys[key]
	return ok
}

// MarkImported appends an entry for the key and remembers it in memory.
// The file is opened per append so a crashed run loses at most the entry
// being written.
func (l *Ledger) MarkImported(key string, orderID int64) error {
	if l == nil {
		return nil
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	entry := Entry{
		Key:        key,
		OrderID:    orderID,
		RunID:      l.runID,
		ImportedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode ledger entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append to ledger %s: %w", l.path, err)
	}

	l.keys[key] = struct{}{}
	return nil
}

// Len is the number of distinct imported keys known to the ledger.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// RunID identifies this import run in appended entries.
func (l *Ledger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}
