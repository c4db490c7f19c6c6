package icons

import (
	"context"
	"errors"
	"testing"

	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/store"
)

type fakeGenerator struct {
	uri   string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateIcon(ctx context.Context, kind gemini.IconKind) (string, error) {
	f.calls++
	return f.uri, f.err
}

func newStore(t *testing.T) *store.DiskStore {
	t.Helper()
	ds, err := store.NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

const pngURI = "data:image/png;base64,iVBORw=="

func TestGetGeneratesOnce(t *testing.T) {
	ds := newStore(t)
	gen := &fakeGenerator{uri: pngURI}
	svc := New(ds, gen)

	for i := 0; i < 3; i++ {
		uri, err := svc.Get(context.Background(), gemini.AppIcon)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if uri != pngURI {
			t.Errorf("Get() = %q", uri)
		}
	}
	if gen.calls != 1 {
		t.Errorf("Expected 1 generation, got %d", gen.calls)
	}
	if data, ok := ds.Get(store.KeyAppIcon); !ok || string(data) != pngURI {
		t.Errorf("Expected icon stored under %s", store.KeyAppIcon)
	}
	if ds.Contains(store.KeySupportIcon) {
		t.Error("support icon should not be stored")
	}
}

func TestStored(t *testing.T) {
	ds := newStore(t)
	gen := &fakeGenerator{uri: pngURI}
	svc := New(ds, gen)

	if _, ok := svc.Stored(gemini.AppIcon); ok {
		t.Error("Expected no stored icon")
	}
	if gen.calls != 0 {
		t.Error("Stored must not generate")
	}

	if _, err := svc.Get(context.Background(), gemini.AppIcon); err != nil {
		t.Fatal(err)
	}
	if uri, ok := svc.Stored(gemini.AppIcon); !ok || uri != pngURI {
		t.Errorf("Stored() = %q, %v", uri, ok)
	}
}

func TestGetUnavailable(t *testing.T) {
	svc := New(newStore(t), &fakeGenerator{err: gemini.ErrNoAPIKey})

	_, err := svc.Get(context.Background(), gemini.SupportIcon)
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, gemini.ErrNoAPIKey) {
		t.Errorf("Expected ErrUnavailable wrapping the cause, got %v", err)
	}
}

func TestGetReplacesInvalidStoredIcon(t *testing.T) {
	ds := newStore(t)
	if err := ds.Put(store.KeyAppIcon, []byte("not a uri")); err != nil {
		t.Fatal(err)
	}
	gen := &fakeGenerator{uri: pngURI}

	uri, err := New(ds, gen).Get(context.Background(), gemini.AppIcon)
	if err != nil || uri != pngURI {
		t.Fatalf("Get() = %q, %v", uri, err)
	}
	if gen.calls != 1 {
		t.Errorf("Expected regeneration, got %d calls", gen.calls)
	}
}

func TestRegenerate(t *testing.T) {
	ds := newStore(t)
	gen := &fakeGenerator{uri: pngURI}
	svc := New(ds, gen)

	if _, err := svc.Get(context.Background(), gemini.AppIcon); err != nil {
		t.Fatal(err)
	}

	gen.uri = "data:image/jpeg;base64,/9j/"
	uri, err := svc.Regenerate(context.Background(), gemini.AppIcon)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if uri != gen.uri || gen.calls != 2 {
		t.Errorf("Regenerate() = %q after %d calls", uri, gen.calls)
	}

	gen.err = errors.New("quota")
	if _, err := svc.Regenerate(context.Background(), gemini.AppIcon); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if data, _ := ds.Get(store.KeyAppIcon); string(data) != "data:image/jpeg;base64,/9j/" {
		t.Errorf("failed regeneration must keep the old icon, got %q", data)
	}
}

func TestUnknownKind(t *testing.T) {
	svc := New(newStore(t), &fakeGenerator{uri: pngURI})
	if _, err := svc.Get(context.Background(), gemini.IconKind("banner")); err == nil {
		t.Error("Expected error for unknown icon")
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantMIME string
		wantLen  int
		wantErr  bool
	}{
		{"png", pngURI, "image/png", 4, false},
		{"jpeg", "data:image/jpeg;base64,/9j/", "image/jpeg", 3, false},
		{"no prefix", "image/png;base64,iVBORw==", "", 0, true},
		{"no comma", "data:image/png;base64", "", 0, true},
		{"not base64", "data:image/png,iVBORw==", "", 0, true},
		{"bad payload", "data:image/png;base64,%%%", "", 0, true},
		{"empty payload", "data:image/png;base64,", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := DecodeDataURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeDataURI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDataURI) {
					t.Errorf("Expected ErrInvalidDataURI, got %v", err)
				}
				return
			}
			if mime != tt.wantMIME || len(data) != tt.wantLen {
				t.Errorf("DecodeDataURI() = %q, %d bytes", mime, len(data))
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if Extension("image/jpeg") != ".jpg" || Extension("image/png") != ".png" || Extension("") != ".png" {
		t.Error("unexpected extensions")
	}
}
