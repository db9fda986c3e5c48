package categories

// Category is one entry of the active category list. Keywords drive the
// heuristic classifier used when the text generation service is unavailable.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type Config struct {
	Categories []Category `yaml:"categories"`
	Fallback   string     `yaml:"fallback"`
}
