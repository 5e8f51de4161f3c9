package jsonutil_test

import (
	"strings"
	"testing"

	"cssg/utils/jsonutil"
)

type sample struct {
	Name    string            `json:"name"`
	Size    int               `json:"size"`
	Tags    []string          `json:"tags,omitempty"`
	Extra   *string           `json:"extra,omitempty"`
	Mapping map[string]string `json:"mapping,omitempty"`
}

func TestDeserializeOverlay(t *testing.T) {
	extra := "prototype"
	proto := sample{
		Name:    "default",
		Size:    42,
		Tags:    []string{"a", "b"},
		Extra:   &extra,
		Mapping: map[string]string{"k": "v"},
	}

	got, err := jsonutil.Deserialize(proto, []byte(`{"name":"custom","extra":"override"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "custom" {
		t.Errorf("expected overridden name %q, got %q", "custom", got.Name)
	}
	if got.Size != 42 {
		t.Errorf("expected prototype size 42, got %d", got.Size)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("expected prototype tags, got %v", got.Tags)
	}
	if got.Extra == nil || *got.Extra != "override" {
		t.Errorf("expected overridden extra, got %v", got.Extra)
	}

	// The prototype, including state behind pointers, must stay intact.
	if *proto.Extra != "prototype" {
		t.Errorf("prototype was modified through pointer field: %q", *proto.Extra)
	}
	if proto.Name != "default" || proto.Size != 42 {
		t.Errorf("prototype was modified: %+v", proto)
	}
}

func TestDeserializeUnknownField(t *testing.T) {
	if _, err := jsonutil.Deserialize(sample{}, []byte(`{"bogus":1}`)); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	} else if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected error to name the unknown field, got %q", err)
	}
}

func TestDeserializeBadJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"truncated", `{"name":`},
		{"wrong type", `{"size":"large"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := jsonutil.Deserialize(sample{Name: "default"}, []byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDeserializeMapPrototype(t *testing.T) {
	proto := map[string]string{
		"font-size-base": "16px",
		"line-height":    "1.5",
	}
	got, err := jsonutil.Deserialize(proto, []byte(`{"font-size-base":"18px","measure":"38rem"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"font-size-base": "18px",
		"line-height":    "1.5",
		"measure":        "38rem",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(got), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("expected %s=%q, got %q", k, v, got[k])
		}
	}
	if proto["font-size-base"] != "16px" || len(proto) != 2 {
		t.Errorf("prototype map was modified: %v", proto)
	}
}

func TestClone(t *testing.T) {
	orig := sample{Name: "orig", Tags: []string{"x"}, Mapping: map[string]string{"a": "b"}}
	cp, err := jsonutil.Clone(orig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cp.Tags[0] = "changed"
	cp.Mapping["a"] = "changed"
	if orig.Tags[0] != "x" {
		t.Error("clone shares slice storage with original")
	}
	if orig.Mapping["a"] != "b" {
		t.Error("clone shares map storage with original")
	}
}

func TestSerialize(t *testing.T) {
	data, err := jsonutil.Serialize(sample{Name: "n", Size: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"name":"n","size":1}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	if _, err := jsonutil.Serialize(make(chan int)); err == nil {
		t.Error("expected error for unsupported type, got nil")
	}
}
