package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pattern-projector/internal/store"
)

func TestLoadDefaults(t *testing.T) {
	got, err := Load(store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Default(), got); d != "" {
		t.Error(d)
	}
}

func TestSaveLoad(t *testing.T) {
	s := store.NewMemory()
	want := Default()
	want.Inverted = true
	want.InvertedGreen = true
	want.Overlay.Paper = true
	if err := Save(s, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(s)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	s := store.NewMemory()
	if err := s.Set(store.KeyDisplaySettings, []byte(`{"inverted":true}`)); err != nil {
		t.Fatal(err)
	}
	got, err := Load(s)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Inverted || !got.FourCorners || !got.Overlay.Grid {
		t.Errorf("got %+v", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	s := store.NewMemory()
	if err := s.Set(store.KeyDisplaySettings, []byte(`{"inverted":"yes"}`)); err != nil {
		t.Fatal(err)
	}
	got, err := Load(s)
	if err == nil {
		t.Error("expected a decode error")
	}
	if d := cmp.Diff(Default(), got); d != "" {
		t.Error(d)
	}
}
