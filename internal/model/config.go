package model

import "time"

// Config holds the complete cropdoctor configuration
type Config struct {
	Vision      VisionConfig      `yaml:"vision"`
	Search      SearchConfig      `yaml:"search"`
	Enrich      EnrichConfig      `yaml:"enrich"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// VisionConfig configures the vision-capable model gateway
type VisionConfig struct {
	// Provider name: "openrouter", "openai", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific, e.g. "google/gemini-2.0-flash-001")
	Model string `yaml:"model"`

	// APIKey for OpenRouter/OpenAI (usually set via env instead)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for custom OpenAI-compatible endpoints
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout per model call
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens limits the response length
	MaxTokens int `yaml:"max_tokens"`

	// MaxRetries bounds retries of transient gateway errors
	MaxRetries int `yaml:"max_retries"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// SearchConfig configures the web search gateway
type SearchConfig struct {
	// APIKey for the Serper-compatible search API
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for the search API endpoint
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout per search call
	Timeout time.Duration `yaml:"timeout"`

	// MaxResults caps how many organic results are consumed
	MaxResults int `yaml:"max_results"`

	// MaxRetries bounds retries of transient gateway errors
	MaxRetries int `yaml:"max_retries"`

	// Country and Language hint the search locale
	Country  string `yaml:"country,omitempty"`
	Language string `yaml:"language,omitempty"`
}

// EnrichConfig configures optional fetching of search result pages so the
// treatment synthesis prompt can quote real page text
type EnrichConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MaxPages     int           `yaml:"max_pages"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
}

// CacheConfig configures gateway response caching
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`

	// Backend: "memory", "disk", or "layered"
	Backend string `yaml:"backend"`

	// Dir is the disk cache directory (disk/layered backends)
	Dir string `yaml:"dir,omitempty"`

	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing and request pacing
type ConcurrencyConfig struct {
	// Workers is the number of concurrent pipeline runs in batch mode
	Workers int `yaml:"workers"`

	// RequestsPerSecond paces gateway calls shared across runs
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Vision: VisionConfig{
			Provider:   "openrouter",
			Model:      "google/gemini-2.0-flash-001",
			Timeout:    30 * time.Second,
			MaxTokens:  2000,
			MaxRetries: 2,
		},
		Search: SearchConfig{
			BaseURL:    "https://google.serper.dev",
			Timeout:    10 * time.Second,
			MaxResults: 8,
			MaxRetries: 2,
			Country:    "us",
			Language:   "en",
		},
		Enrich: EnrichConfig{
			Enabled:      false,
			MaxPages:     3,
			MaxBodyBytes: 1_000_000,
			Timeout:      10 * time.Second,
			UserAgent:    "CropDoctor/0.1 (+https://github.com/hridoy-931/Agri-AI)",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   "memory",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
