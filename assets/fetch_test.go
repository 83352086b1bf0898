package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/a.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(mapJSON(4))
	}))
	defer srv.Close()

	f := HTTPFetcher{BaseURL: srv.URL + "/maps"}
	data, err := f.Fetch(context.Background(), "a.json")
	if err != nil || string(data) != string(mapJSON(4)) {
		t.Fatalf("unexpected fetch result %q, %v", data, err)
	}
	if _, err := f.Fetch(context.Background(), "missing.json"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestOverlayPrefersFirst(t *testing.T) {
	disk := FSFetcher{FS: fstest.MapFS{"a.json": {Data: []byte("disk")}}}
	bundled := FSFetcher{FS: fstest.MapFS{"a.json": {Data: []byte("embed")}, "b.json": {Data: []byte("embed-b")}}}
	o := Overlay{disk, bundled}

	if data, _ := o.Fetch(context.Background(), "a.json"); string(data) != "disk" {
		t.Fatalf("expected disk copy, got %q", data)
	}
	if data, _ := o.Fetch(context.Background(), "b.json"); string(data) != "embed-b" {
		t.Fatalf("expected fallback copy, got %q", data)
	}
	if _, err := o.Fetch(context.Background(), "c.json"); err == nil {
		t.Fatalf("expected error when no fetcher has the file")
	}
}

func TestEmbeddedDemoLoads(t *testing.T) {
	loads := NewMapLoads(Embedded())
	loads.Load("demo.json")
	waitFor(t, func() bool { return loads.StatusOf("demo.json").State != StatusStarted })

	status := loads.StatusOf("demo.json")
	if status.State != StatusComplete {
		t.Fatalf("expected demo map to load, got %s", status)
	}
	m, _ := loads.Take("demo.json")
	if ts, ok := m.TilesetByGID(1); !ok || ts.Name != "terrain" {
		t.Fatalf("expected external terrain tileset to be resolved")
	}
}

func TestWatcherReportsMapWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "level.json")
	if err := os.WriteFile(target, mapJSON(1), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("expected event for %s, got %s", target, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}
