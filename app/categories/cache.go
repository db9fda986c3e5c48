package categories

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Cache holds the active category list loaded from a YAML file. The list can
// be reloaded at runtime without restarting the server.
type Cache struct {
	configFile string
	config     *Config
	mu         sync.RWMutex
}

func NewCache(configFile string) *Cache {
	return &Cache{
		configFile: configFile,
		config:     defaultConfig(),
	}
}

func (c *Cache) Run() error {
	if _, err := os.Stat(c.configFile); os.IsNotExist(err) {
		slog.Debug("Categories file not found, using built-in defaults", "file", c.configFile)
		return nil
	}

	return c.Load()
}

func (c *Cache) Load() error {
	data, err := os.ReadFile(c.configFile)
	if err != nil {
		return fmt.Errorf("failed to read categories file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse categories file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return fmt.Errorf("invalid categories file %s: %w", c.configFile, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = &config

	slog.Debug("Categories loaded", "file", c.configFile, "count", len(config.Categories), "fallback", config.Fallback)

	return nil
}

// Names returns the active category names, fallback included.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.config.Categories))
	for _, cat := range c.config.Categories {
		names = append(names, cat.Name)
	}
	return names
}

func (c *Cache) Fallback() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Fallback
}

// Keywords returns the per-category keyword table.
func (c *Cache) Keywords() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table := make(map[string][]string, len(c.config.Categories))
	for _, cat := range c.config.Categories {
		table[cat.Name] = append([]string(nil), cat.Keywords...)
	}
	return table
}

func (c *Cache) Contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, cat := range c.config.Categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}

func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.config.Categories)
}

func validateConfig(config *Config) error {
	if len(config.Categories) == 0 {
		return fmt.Errorf("category list is empty")
	}

	seen := make(map[string]bool, len(config.Categories))
	for _, cat := range config.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category '%s'", cat.Name)
		}
		seen[cat.Name] = true
	}

	if config.Fallback == "" {
		return fmt.Errorf("fallback category is not set")
	}
	if !seen[config.Fallback] {
		return fmt.Errorf("fallback category '%s' is not in the category list", config.Fallback)
	}

	return nil
}

func defaultConfig() *Config {
	return &Config{
		Fallback: "other",
		Categories: []Category{
			{Name: "technology", Keywords: []string{"software", "programming", "code", "developer", "api", "golang", "javascript", "python", "github", "linux", "database", "cloud", "ai", "machine learning"}},
			{Name: "design", Keywords: []string{"design", "ui", "ux", "typography", "figma", "css", "interface", "illustration"}},
			{Name: "business", Keywords: []string{"startup", "business", "marketing", "finance", "investment", "economy", "product", "saas"}},
			{Name: "science", Keywords: []string{"science", "research", "study", "physics", "biology", "space", "climate", "paper"}},
			{Name: "news", Keywords: []string{"news", "breaking", "report", "politics", "election", "government"}},
			{Name: "entertainment", Keywords: []string{"movie", "music", "game", "gaming", "video", "film", "anime", "streaming"}},
			{Name: "lifestyle", Keywords: []string{"travel", "food", "recipe", "health", "fitness", "fashion", "home"}},
			{Name: "other", Keywords: nil},
		},
	}
}
