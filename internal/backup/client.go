// ABOUTME: Charm KV mirror of the shift log tables
// ABOUTME: Short-lived Do/DoReadOnly transactions so other notemma processes are never locked out

package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/charmbracelet/log"

	"github.com/notemma/notemma/internal/db"
)

// DBName is the KV database name for notemma.
const DBName = "notemma"

// Client mirrors rows into Charm KV. It does not hold a connection; each
// operation opens the KV store, runs, and closes it.
type Client struct {
	dbName   string
	autoSync bool
}

// Option configures a Client.
type Option func(*Client)

// WithDBName sets the database name.
func WithDBName(name string) Option {
	return func(c *Client) {
		c.dbName = name
	}
}

// WithAutoSync enables or disables syncing to the Charm server after a push.
func WithAutoSync(enabled bool) Option {
	return func(c *Client) {
		c.autoSync = enabled
	}
}

// NewClient creates a mirror client. A non-empty host overrides CHARM_HOST.
func NewClient(host string, opts ...Option) (*Client, error) {
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, err
		}
	}

	c := &Client{dbName: DBName}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Source is where rows are read from.
type Source interface {
	ListWorkEntries(ctx context.Context, filter db.HistoryFilter) ([]db.WorkEntry, error)
	ListOvertime(ctx context.Context, filter db.OvertimeFilter) ([]db.OvertimeEntry, error)
	ListHandoverNotes(ctx context.Context, limit int) ([]db.HandoverNote, error)
}

// Counts is the number of mirrored rows per table.
type Counts map[db.Table]int

// Key returns the KV key for a row. Ids are zero padded so keys sort in id order.
func Key(table db.Table, id int64) []byte {
	return []byte(fmt.Sprintf("%s:%012d", table, id))
}

type item struct {
	key   []byte
	value []byte
}

// collect reads every row from src and encodes it for the mirror.
func collect(ctx context.Context, src Source) ([]item, Counts, error) {
	var items []item
	counts := Counts{}

	add := func(table db.Table, id int64, row any) error {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal %s %d: %w", table, id, err)
		}
		items = append(items, item{key: Key(table, id), value: data})
		counts[table]++
		return nil
	}

	history, err := src.ListWorkEntries(ctx, db.HistoryFilter{})
	if err != nil {
		return nil, nil, err
	}
	for _, e := range history {
		if err := add(db.TableHistory, e.ID, e); err != nil {
			return nil, nil, err
		}
	}

	claims, err := src.ListOvertime(ctx, db.OvertimeFilter{})
	if err != nil {
		return nil, nil, err
	}
	for _, e := range claims {
		if err := add(db.TableOvertime, e.ID, e); err != nil {
			return nil, nil, err
		}
	}

	notes, err := src.ListHandoverNotes(ctx, 0)
	if err != nil {
		return nil, nil, err
	}
	for _, n := range notes {
		if err := add(db.TableHandover, n.ID, n); err != nil {
			return nil, nil, err
		}
	}

	return items, counts, nil
}

// Push copies every row into the mirror. Rows are immutable, so pushing
// again rewrites the same keys with the same values.
func (c *Client) Push(ctx context.Context, src Source) (Counts, error) {
	items, counts, err := collect(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	err = kv.Do(c.dbName, func(k *kv.KV) error {
		for _, it := range items {
			if err := k.Set(it.key, it.value); err != nil {
				return fmt.Errorf("set %s: %w", it.key, err)
			}
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("push to charm: %w", err)
	}

	log.Debug("backup: pushed rows", "history", counts[db.TableHistory], "overtime", counts[db.TableOvertime], "handover", counts[db.TableHandover])
	return counts, nil
}

// Mirrored counts the rows currently held in the mirror.
func (c *Client) Mirrored() (Counts, error) {
	var keys [][]byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		keys, err = k.Keys()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list charm keys: %w", err)
	}
	return countKeys(keys), nil
}

func countKeys(keys [][]byte) Counts {
	counts := Counts{}
	for _, key := range keys {
		for _, table := range db.Tables {
			if strings.HasPrefix(string(key), string(table)+":") {
				counts[table]++
				break
			}
		}
	}
	return counts
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", err
	}
	return cc.ID()
}

// CharmHost returns the configured Charm host.
func CharmHost() string {
	if host := os.Getenv("CHARM_HOST"); host != "" {
		return host
	}
	return "charm.2389.dev"
}
