package sources

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "sources.yaml", `
sources:
  - id: daily
    type: random
  - id: seafood
    name: Seafood picks
    type: Category
    value: " Seafood "
    limit: 3
    request_delay_ms: 250
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(all))
	}

	daily, ok := reg.ByID("daily")
	if !ok {
		t.Fatal("expected daily source")
	}
	if daily.Limit != defaultRandomLimit || daily.Name != "daily" {
		t.Fatalf("unexpected defaults %+v", daily)
	}

	seafood, _ := reg.ByID("seafood")
	if seafood.Type != TypeCategory || seafood.Value != "Seafood" || seafood.Limit != 3 {
		t.Fatalf("unexpected seafood source %+v", seafood)
	}
	if seafood.RequestDelay() != 250*time.Millisecond {
		t.Fatalf("unexpected delay %v", seafood.RequestDelay())
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "sources.json", `{"sources":[{"id":"b","type":"letter","value":"b"}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	src, _ := reg.ByID("b")
	if src.Limit != defaultQueryLimit {
		t.Fatalf("expected default query limit, got %d", src.Limit)
	}
}

func TestLoadRegistryRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
sources:
  - {id: a, type: random}
  - {id: a, type: random}
`,
		"missing value": `
sources:
  - {id: a, type: area}
`,
		"long letter": `
sources:
  - {id: a, type: letter, value: ab}
`,
		"unknown type": `
sources:
  - {id: a, type: trending}
`,
		"empty": `sources: []`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadRegistry(writeFile(t, "sources.yaml", content)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}
