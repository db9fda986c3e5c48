package categories

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cache := NewCache("nonexistent.yml")

	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}

	if cache.Count() == 0 {
		t.Fatal("Expected built-in default categories")
	}
	if cache.Fallback() != "other" {
		t.Errorf("Expected default fallback 'other', got: %s", cache.Fallback())
	}
	if !cache.Contains("technology") {
		t.Error("Expected default category 'technology'")
	}
	if cache.Contains("nonexistent") {
		t.Error("Did not expect category 'nonexistent'")
	}
}

func TestLoadFromFile(t *testing.T) {
	configData := `
categories:
  - name: "技术"
    keywords: ["golang", "api"]
  - name: "阅读"
    keywords: ["book"]
  - name: "其他"
fallback: "其他"
`
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yml")
	if err := os.WriteFile(file, []byte(configData), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cache := NewCache(file)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	names := cache.Names()
	if len(names) != 3 {
		t.Fatalf("Expected 3 categories, got: %d", len(names))
	}
	if cache.Fallback() != "其他" {
		t.Errorf("Expected fallback '其他', got: %s", cache.Fallback())
	}

	keywords := cache.Keywords()
	if len(keywords["技术"]) != 2 {
		t.Errorf("Expected 2 keywords for '技术', got: %d", len(keywords["技术"]))
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty list", "categories: []\nfallback: other\n"},
		{"missing fallback", "categories:\n  - name: tech\n"},
		{"fallback not in list", "categories:\n  - name: tech\nfallback: other\n"},
		{"duplicate category", "categories:\n  - name: tech\n  - name: tech\nfallback: tech\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			file := filepath.Join(dir, "categories.yml")
			if err := os.WriteFile(file, []byte(tt.data), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			cache := NewCache(file)
			if err := cache.Run(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
