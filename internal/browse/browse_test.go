// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/partcatalog/internal/catalog"
	"github.com/pdiddy/partcatalog/internal/sink"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// --- test helpers ---

func sampleTable() catalog.Table {
	return catalog.Table{
		Header: []string{"MPN", "Value", "Datasheet"},
		Rows: [][]string{
			{"ERJ-2RKF1000X", "100 Ω", "https://example.com/erj.pdf"},
			{"ERJ-2RKF4701X", "4.7 kΩ", "https://example.com/erj.pdf"},
			{"ERJ-2RKF1002X", "10 kΩ", ""},
			{"GCM155R71H104KA55D", "100 nF", "https://example.com/gcm.pdf"},
			{"TBP02R2-381-02P", "2P", "50%_off"},
		},
	}
}

func writeCSV(t *testing.T, path string, table catalog.Table) {
	t.Helper()
	require.NoError(t, sink.WriteCSV(path, table))
}

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	path := filepath.Join(root, "parts.csv")
	writeCSV(t, path, sampleTable())
	loaded, err := store.Load(context.Background(), path)
	require.NoError(t, err)
	require.True(t, loaded)
	return store, root
}

func mpnColumn(p Page) []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r[0]
	}
	return out
}

func get(t *testing.T, srv http.Handler, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

// --- store ---

func TestStoreLoadAndList(t *testing.T) {
	store, root := testStore(t)

	tables, err := store.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "parts", tables[0].Name)
	assert.Equal(t, filepath.Join(root, "parts.csv"), tables[0].Path)
	assert.Equal(t, []string{"MPN", "Value", "Datasheet"}, tables[0].Columns)
	assert.Equal(t, 5, tables[0].Rows)
}

func TestStoreTableNameNested(t *testing.T) {
	store, err := NewStore("/data")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "sub/UNITED_RESISTORS_DATA_BASE", store.TableName("/data/sub/UNITED_RESISTORS_DATA_BASE.csv"))
	assert.Equal(t, "x", store.TableName("/elsewhere/x.csv"))
}

func TestStoreQueryFileOrder(t *testing.T) {
	store, _ := testStore(t)

	page, err := store.Query(context.Background(), "parts", QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Matched)
	assert.Equal(t, 1, page.Pages)
	assert.Equal(t, sampleTable().Rows, page.Rows)
}

func TestStoreQueryFilter(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	page, err := store.Query(ctx, "parts", QueryOptions{Q: "erj-2rk"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Matched)

	page, err = store.Query(ctx, "parts", QueryOptions{Q: "gcm.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GCM155R71H104KA55D"}, mpnColumn(page))

	// LIKE wildcards in the filter are literal.
	page, err = store.Query(ctx, "parts", QueryOptions{Q: "50%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TBP02R2-381-02P"}, mpnColumn(page))

	page, err = store.Query(ctx, "parts", QueryOptions{Q: "_"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Matched)

	page, err = store.Query(ctx, "parts", QueryOptions{Q: "nothing-matches"})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Matched)
	assert.Equal(t, 1, page.Pages)
	assert.Empty(t, page.Rows)
}

func TestStoreQuerySort(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	page, err := store.Query(ctx, "parts", QueryOptions{Sort: "MPN"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ERJ-2RKF1000X", "ERJ-2RKF1002X", "ERJ-2RKF4701X", "GCM155R71H104KA55D", "TBP02R2-381-02P",
	}, mpnColumn(page))

	page, err = store.Query(ctx, "parts", QueryOptions{Sort: "MPN", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "TBP02R2-381-02P", page.Rows[0][0])

	page, err = store.Query(ctx, "parts", QueryOptions{Sort: "no such column"})
	require.NoError(t, err)
	assert.Equal(t, "ERJ-2RKF1000X", page.Rows[0][0])
}

func TestStoreQueryPagination(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	page, err := store.Query(ctx, "parts", QueryOptions{PageSize: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, []string{"ERJ-2RKF1002X", "GCM155R71H104KA55D"}, mpnColumn(page))

	page, err = store.Query(ctx, "parts", QueryOptions{PageSize: 2, Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []string{"TBP02R2-381-02P"}, mpnColumn(page))
}

func TestStoreQueryUnknownTable(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Query(context.Background(), "nope", QueryOptions{})
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestStoreLoadSkipsUnchanged(t *testing.T) {
	store, root := testStore(t)
	path := filepath.Join(root, "parts.csv")

	loaded, err := store.Load(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestStoreReloadReplacesRows(t *testing.T) {
	store, root := testStore(t)
	ctx := context.Background()
	path := filepath.Join(root, "parts.csv")

	table := sampleTable()
	table.Rows = table.Rows[:2]
	writeCSV(t, path, table)
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	require.True(t, loaded)

	page, err := store.Query(ctx, "parts", QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Matched)

	tables, err := store.Tables(ctx)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestStoreRemove(t *testing.T) {
	store, root := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Remove(ctx, filepath.Join(root, "parts.csv")))
	tables, err := store.Tables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)

	// Removing twice is a no-op.
	assert.NoError(t, store.Remove(ctx, filepath.Join(root, "parts.csv")))
}

func TestStoreLoadMissingFile(t *testing.T) {
	store, root := testStore(t)
	_, err := store.Load(context.Background(), filepath.Join(root, "gone.csv"))
	var ioErr *sink.SinkIOError
	assert.True(t, errors.As(err, &ioErr))
}

// --- discovery ---

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeCSV(t, filepath.Join(root, "a.csv"), sampleTable())
	writeCSV(t, filepath.Join(root, "nested", "b.csv"), sampleTable())
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	files, err := Discover(root, "**/*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.csv"),
		filepath.Join(root, "nested", "b.csv"),
	}, files)

	assert.True(t, Matches(root, "**/*.csv", filepath.Join(root, "nested", "b.csv")))
	assert.False(t, Matches(root, "**/*.csv", filepath.Join(root, ".partcatalog-123.tmp")))
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	writeCSV(t, filepath.Join(root, "a.csv"), sampleTable())
	writeCSV(t, filepath.Join(root, "nested", "b.csv"), sampleTable())
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty.csv"), nil, 0o644))

	store, err := NewStore(root)
	require.NoError(t, err)
	defer store.Close()

	n, err := LoadAll(context.Background(), store, root, "**/*.csv", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// --- server ---

func TestServerIndex(t *testing.T) {
	store, _ := testStore(t)
	srv := NewServer(store, types.BrowseConfig{}, zap.NewNop())

	code, body := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `<a href="/tables/parts">parts</a>`)
	assert.Contains(t, body, "<td>5</td>")
}

func TestServerTable(t *testing.T) {
	store, _ := testStore(t)
	srv := NewServer(store, types.BrowseConfig{PageSize: 2}, zap.NewNop())

	code, body := get(t, srv, "/tables/parts?sort=MPN&desc=true")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<h1>parts</h1>")
	assert.Contains(t, body, "TBP02R2-381-02P")
	assert.NotContains(t, body, "ERJ-2RKF1000X")
	assert.Contains(t, body, "page 1 of 3")
	assert.Contains(t, body, "next &raquo;")
	assert.Contains(t, body, `<a href="https://example.com/gcm.pdf">https://example.com/gcm.pdf</a>`)
	assert.Contains(t, body, "&#9660;")
}

func TestServerTableFilter(t *testing.T) {
	store, _ := testStore(t)
	srv := NewServer(store, types.BrowseConfig{}, zap.NewNop())

	code, body := get(t, srv, "/tables/parts?q=4701")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "1 of 5 rows")
	assert.Contains(t, body, `value="4701"`)
}

func TestServerUnknownTable(t *testing.T) {
	store, _ := testStore(t)
	srv := NewServer(store, types.BrowseConfig{}, zap.NewNop())

	code, _ := get(t, srv, "/tables/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServerMetricsAndHealth(t *testing.T) {
	store, _ := testStore(t)
	srv := NewServer(store, types.BrowseConfig{}, zap.NewNop())

	get(t, srv, "/tables/parts")
	code, body := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "partcatalog_browse_page_views_total")
	assert.Contains(t, body, `partcatalog_browse_rows_served_total{table="parts"}`)

	code, body = get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)
}

func TestEncodeQuery(t *testing.T) {
	assert.Equal(t, "?", encodeQuery(QueryOptions{Page: 1}))
	assert.Equal(t, "?desc=true&page=3&q=10k&sort=MPN", encodeQuery(QueryOptions{Q: "10k", Sort: "MPN", Desc: true, Page: 3}))
}

// --- watcher ---

func TestWatcherReloadsChangedCSV(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)
	defer store.Close()

	w, err := NewWatcher(store, root, "**/*.csv", zap.NewNop())
	require.NoError(t, err)
	defer w.Close()
	w.debounce = 20 * time.Millisecond
	w.reloaded = make(chan []string, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	path := filepath.Join(root, "parts.csv")
	writeCSV(t, path, sampleTable())

	waitFor(t, w.reloaded, path)
	page, err := store.Query(ctx, "parts", QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Matched)

	require.NoError(t, os.Remove(path))
	waitFor(t, w.reloaded, path)
	_, err = store.Query(ctx, "parts", QueryOptions{})
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func waitFor(t *testing.T, ch <-chan []string, path string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case handled := <-ch:
			for _, p := range handled {
				if p == path {
					return
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", path)
		}
	}
}
