// ABOUTME: Tests for the Charm KV mirror
// ABOUTME: Covers key layout, row collection, and mirrored-key counting without a Charm server
package backup

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notemma/notemma/internal/db"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "history:000000000042", string(Key(db.TableHistory, 42)))
	assert.Equal(t, "handover:000000000001", string(Key(db.TableHandover, 1)))
}

func TestCollect(t *testing.T) {
	ctx := context.Background()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.InsertWorkEntry(ctx, db.WorkEntry{Engineer: "Gaz", Kind: "PPM", Task: "Flushing", Action: "Visual inspection"})
	require.NoError(t, err)
	_, err = store.InsertOvertime(ctx, db.OvertimeEntry{Engineer: "Gaz", Date: time.Now(), Hours: 1})
	require.NoError(t, err)
	_, err = store.InsertHandoverNote(ctx, db.HandoverNote{Engineer: "Gaz", Message: "one"})
	require.NoError(t, err)
	_, err = store.InsertHandoverNote(ctx, db.HandoverNote{Engineer: "Gaz", Message: "two"})
	require.NoError(t, err)

	items, counts, err := collect(ctx, store)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, Counts{db.TableHistory: 1, db.TableOvertime: 1, db.TableHandover: 2}, counts)

	var entry db.WorkEntry
	require.NoError(t, json.Unmarshal(items[0].value, &entry))
	assert.Equal(t, "history:000000000001", string(items[0].key))
	assert.Equal(t, "Flushing", entry.Task)
}

func TestCountKeys(t *testing.T) {
	keys := [][]byte{
		Key(db.TableHistory, 1),
		Key(db.TableHistory, 2),
		Key(db.TableOvertime, 1),
		[]byte("historyish"),
		[]byte("unrelated:1"),
	}

	counts := countKeys(keys)
	assert.Equal(t, 2, counts[db.TableHistory])
	assert.Equal(t, 1, counts[db.TableOvertime])
	assert.Equal(t, 0, counts[db.TableHandover])
}

func TestNewClientOptions(t *testing.T) {
	t.Setenv("CHARM_HOST", "")

	c, err := NewClient("charm.example.net", WithDBName("notemma-test"), WithAutoSync(true))
	require.NoError(t, err)
	assert.Equal(t, "notemma-test", c.dbName)
	assert.True(t, c.autoSync)
	assert.Equal(t, "charm.example.net", CharmHost())
}
