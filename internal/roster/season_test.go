package roster

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	def := c.Default()
	if def.Name != "compile_season1_aux" {
		t.Errorf("default season = %q", def.Name)
	}
	if len(def.Protocols) != 15 {
		t.Errorf("default season has %d protocols, want 15", len(def.Protocols))
	}
	if def.Closed {
		t.Error("default season should be open")
	}

	old, ok := c.Get("compile_season1")
	if !ok {
		t.Fatal("compile_season1 not found")
	}
	if !old.Closed {
		t.Error("compile_season1 should be closed")
	}
	if old.Has("HATE") {
		t.Error("V1 set must not contain HATE")
	}

	if _, ok := c.Get("nope"); ok {
		t.Error("unknown season resolved")
	}
}

func TestCatalogUniverse(t *testing.T) {
	// a catalog of only the old season still spans the full roster
	c, err := NewCatalog([]SeasonConfig{{Name: "old", ProtocolSet: SetV1}})
	if err != nil {
		t.Fatal(err)
	}

	u := c.Universe()
	if len(u) != len(All()) {
		t.Fatalf("universe has %d protocols, want %d", len(u), len(All()))
	}
	for i, p := range All() {
		if u[i] != p {
			t.Errorf("universe[%d] = %s, want %s", i, u[i], p)
		}
	}

	u[0] = "CHANGED"
	if c.Universe()[0] == "CHANGED" {
		t.Error("Universe must return a copy")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seasons.yaml")
	content := `
seasons:
  - name: compile_season2
    protocol_set: V1_AUX
    ratio_set: V1
    max_ratio: 10
    weights:
      FIRE: 7
  - name: compile_season1
    protocol_set: V1
    closed: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	s2 := c.Default()
	if s2.Name != "compile_season2" {
		t.Fatalf("default season = %q", s2.Name)
	}
	if s2.MaxRatio != 10 {
		t.Errorf("MaxRatio = %d, want 10", s2.MaxRatio)
	}
	if s2.Weights["FIRE"] != 7 {
		t.Errorf("FIRE weight = %d, want override 7", s2.Weights["FIRE"])
	}
	if s2.Weights["WATER"] != 3 {
		t.Errorf("WATER weight = %d, want 3 from base set", s2.Weights["WATER"])
	}

	s1, _ := c.Get("compile_season1")
	if s1.MaxRatio != DefaultMaxRatio {
		t.Errorf("MaxRatio = %d, want default", s1.MaxRatio)
	}
	if len(s1.Weights) != 0 {
		t.Errorf("season without ratio set should have empty weights, got %v", s1.Weights)
	}
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name  string
		defs []SeasonConfig
	}{
		{"empty", nil},
		{"missing name", []SeasonConfig{{ProtocolSet: SetV1}}},
		{"unknown set", []SeasonConfig{{Name: "x", ProtocolSet: "V9"}}},
		{"unknown ratio set", []SeasonConfig{{Name: "x", RatioSet: "V9"}}},
		{"duplicate", []SeasonConfig{{Name: "x"}, {Name: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.defs); err == nil {
				t.Error("expected error")
			}
		})
	}
}
