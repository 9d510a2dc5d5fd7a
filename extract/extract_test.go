package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Registry tests
// ---------------------------------------------------------------------------

func TestRegistryBuiltInBackends(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"tabula", "basic"} {
		t.Run(name, func(t *testing.T) {
			b, err := reg.Get(name)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", name, err)
			}
			if b == nil {
				t.Fatalf("Get(%q) returned nil backend", name)
			}
			if b.Name() != name {
				t.Errorf("backend registered as %q reports Name() = %q", name, b.Name())
			}
		})
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"pymupdf", "paddleocr", "", "TABULA"} {
		t.Run("name_"+name, func(t *testing.T) {
			b, err := reg.Get(name)
			if err == nil {
				t.Fatalf("Get(%q) expected error, got backend %v", name, b)
			}
			if !errors.Is(err, ErrUnknownBackend) {
				t.Errorf("Get(%q) error = %v, want ErrUnknownBackend", name, err)
			}
		})
	}
}

func TestRegistryRegisterOverride(t *testing.T) {
	reg := NewRegistry()
	fake := &fakeBackend{name: "tabula"}
	reg.Register(fake)

	b, err := reg.Get("tabula")
	if err != nil {
		t.Fatalf("Get after Register returned error: %v", err)
	}
	if b != fake {
		t.Errorf("Get returned %T, want the overriding backend", b)
	}
}

type fakeBackend struct {
	name string
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Extract(ctx context.Context, path string) (*Structure, error) {
	return &Structure{Pages: []Page{}}, nil
}

// ---------------------------------------------------------------------------
// Block id and page shape
// ---------------------------------------------------------------------------

func TestBlockID(t *testing.T) {
	tests := []struct {
		page, index int
		want        string
	}{
		{1, 0, "el_1_0"},
		{1, 7, "el_1_7"},
		{12, 3, "el_12_3"},
	}
	for _, tt := range tests {
		if got := blockID(tt.page, tt.index); got != tt.want {
			t.Errorf("blockID(%d, %d) = %q, want %q", tt.page, tt.index, got, tt.want)
		}
	}
}

func TestNewPageHasEmptyBlockList(t *testing.T) {
	p := newPage(2, 612, 792)
	if p.Blocks == nil {
		t.Error("newPage returned nil Blocks; blank pages must serialize as []")
	}
	if len(p.Blocks) != 0 {
		t.Errorf("newPage returned %d blocks, want 0", len(p.Blocks))
	}
	if p.PageIndex != 2 || p.Width != 612 || p.Height != 792 {
		t.Errorf("newPage = %+v, want pageIndex=2 width=612 height=792", p)
	}
}

// Image blocks must never serialize a content field; text blocks must.
func TestBlockJSONShape(t *testing.T) {
	image := Block{ID: "el_1_1", Type: BlockImage, BBox: [4]float64{0, 0, 10, 10}, PageIndex: 1}
	data, err := json.Marshal(image)
	if err != nil {
		t.Fatalf("marshal image block: %v", err)
	}
	if strings.Contains(string(data), `"content"`) {
		t.Errorf("image block serialized a content field: %s", data)
	}

	text := Block{ID: "el_1_0", Type: BlockText, BBox: [4]float64{1, 2, 3, 4}, PageIndex: 1, Content: "hello"}
	data, err = json.Marshal(text)
	if err != nil {
		t.Fatalf("marshal text block: %v", err)
	}
	for _, key := range []string{`"id"`, `"type"`, `"bbox"`, `"pageIndex"`, `"content"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("text block missing %s key: %s", key, data)
		}
	}
}
