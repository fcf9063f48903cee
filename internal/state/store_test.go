package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type record struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func stores(t *testing.T) map[string]Records {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "guide.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Records{
		"sqlite": db,
		"memory": NewMemory(),
	}
}

func TestRecords_PutGetDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			t.Cleanup(cancel)

			var got record
			ok, err := s.Get(ctx, KeyDirHandle, &got)
			if err != nil || ok {
				t.Fatalf("Get on empty store = %v, %v; want false, nil", ok, err)
			}

			want := record{Path: "/media/usb", Name: "usb"}
			if err := s.Put(ctx, KeyDirHandle, want); err != nil {
				t.Fatalf("Put returned error: %v", err)
			}
			ok, err = s.Get(ctx, KeyDirHandle, &got)
			if err != nil || !ok {
				t.Fatalf("Get = %v, %v; want true, nil", ok, err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("record mismatch (-want +got):\n%s", diff)
			}

			replaced := record{Path: "/media/other", Name: "other"}
			if err := s.Put(ctx, KeyDirHandle, replaced); err != nil {
				t.Fatalf("Put (replace) returned error: %v", err)
			}
			_, _ = s.Get(ctx, KeyDirHandle, &got)
			if got != replaced {
				t.Fatalf("after replace got %#v, want %#v", got, replaced)
			}

			if err := s.Delete(ctx, KeyDirHandle); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			ok, _ = s.Get(ctx, KeyDirHandle, &got)
			if ok {
				t.Fatalf("record still present after Delete")
			}
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "guide.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := db.Put(ctx, KeyDirHandle, record{Path: "/srv/films", Name: "films"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	var got record
	if ok, err := reopened.Get(ctx, KeyDirHandle, &got); !ok || err != nil {
		t.Fatalf("Get after reopen = %v, %v", ok, err)
	}
	if got.Name != "films" {
		t.Fatalf("Name = %q, want films", got.Name)
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemory().Put(ctx, "k", 1); err == nil {
		t.Fatalf("Put with cancelled context returned nil error")
	}
}
