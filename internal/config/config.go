package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (JOBMATCH_AI_APIKEY, etc.)
// 4. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Corpus        CorpusConfig        `mapstructure:"corpus"`
	Matching      MatchingConfig      `mapstructure:"matching"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds the Gemini and YouTube client configuration. The embedding
// model serves the semantic similarity path; the generative model serves the
// skill gap analyzer.
type AIConfig struct {
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	EmbedModel     string               `mapstructure:"embedModel"`
	EmbedBatchSize int                  `mapstructure:"embedBatchSize"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	APIKey         string               `mapstructure:"apiKey"`
	MaxRetries     int                  `mapstructure:"maxRetries"`
	Temperature    float32              `mapstructure:"temperature"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
	YouTube        YouTubeConfig        `mapstructure:"youtube"`
}

// YouTubeConfig holds configuration for the learning-video lookup.
type YouTubeConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	APIKey     string `mapstructure:"apiKey"`
	MaxResults int64  `mapstructure:"maxResults"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// CorpusConfig describes where job postings come from and where the fitted
// model cache lives.
type CorpusConfig struct {
	LinkedInPath string        `mapstructure:"linkedinPath"`
	NaukriPath   string        `mapstructure:"naukriPath"`
	CacheDir     string        `mapstructure:"cacheDir"`
	WarmOnStart  bool          `mapstructure:"warmOnStart"`
	Watch        bool          `mapstructure:"watch"`
	WatchDelay   time.Duration `mapstructure:"watchDelay"`
}

// MatchingConfig holds the tunable knobs of the matching pipeline. Scoring
// weights and boosts are fixed in code; these settings bound request shape
// and vectorizer size.
type MatchingConfig struct {
	DefaultTopK    int     `mapstructure:"defaultTopK"`
	MaxTopK        int     `mapstructure:"maxTopK"`
	MaxFeatures    int     `mapstructure:"maxFeatures"`
	MinDocFreq     int     `mapstructure:"minDocFreq"`
	MaxDocFreqFrac float64 `mapstructure:"maxDocFreqFrac"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// TLS Configuration
	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig holds TLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // TLS mode: "disabled", "server"
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)

	MinVersion string `mapstructure:"minVersion"` // Minimum TLS version: "1.2", "1.3"
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool          `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool          `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
	Window         time.Duration `mapstructure:"window"`         // Rate limiting window duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig holds fine-grained custom metrics configuration
type CustomMetricsConfig struct {
	Pipeline       PipelineMetricsConfig       `mapstructure:"pipeline"`
	Business       BusinessMetricsConfig       `mapstructure:"business"`
	Infrastructure InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// PipelineMetricsConfig holds matching-pipeline metrics configuration
type PipelineMetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	TrackDuration  bool `mapstructure:"trackDuration"`
	TrackStages    bool `mapstructure:"trackStages"`
	TrackModelInfo bool `mapstructure:"trackModelInfo"`
}

// BusinessMetricsConfig holds business metrics configuration
type BusinessMetricsConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	TrackSuccessRates bool `mapstructure:"trackSuccessRates"`
	TrackResultCounts bool `mapstructure:"trackResultCounts"`
}

// InfrastructureMetricsConfig holds infrastructure metrics configuration
type InfrastructureMetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	TrackRateLimits  bool `mapstructure:"trackRateLimits"`
	TrackCacheEvents bool `mapstructure:"trackCacheEvents"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	ModelCheckTimeout time.Duration `mapstructure:"modelCheckTimeout"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("JOBMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'JOBMATCH'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/jobmatch/")
	v.AddConfigPath("$HOME/.jobmatch")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/jobmatch/, $HOME/.jobmatch, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	// Apply fallback logic for backward compatibility
	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	// Resolve secrets from Vault, overriding file/env values
	if err := ApplyVaultSecrets(&config, nil); err != nil {
		return nil, fmt.Errorf("failed to apply vault secrets: %w", err)
	}
	if config.Vault.Enabled {
		log.Println("[CONFIG] Applied secrets from Vault")
	}

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Corpus.LinkedInPath == "" && c.Corpus.NaukriPath == "" {
		return fmt.Errorf("at least one corpus source path is required")
	}

	if c.Matching.DefaultTopK < 1 || c.Matching.DefaultTopK > c.Matching.MaxTopK {
		return fmt.Errorf("matching.defaultTopK must be between 1 and matching.maxTopK (%d)", c.Matching.MaxTopK)
	}

	if c.Matching.MaxDocFreqFrac <= 0 || c.Matching.MaxDocFreqFrac > 1 {
		return fmt.Errorf("matching.maxDocFreqFrac must be in (0, 1]")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	// Validate TLS configuration
	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS

	switch tls.Mode {
	case "disabled":
		// No validation needed for disabled mode
	case "server":
		if tls.CertFile == "" || tls.KeyFile == "" {
			return fmt.Errorf("TLS certificate and key files are required for server mode")
		}
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", tls.Mode)
	}

	switch tls.MinVersion {
	case "", "1.2", "1.3":
		// Valid versions (empty defaults to 1.2)
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}

	return nil
}

// Global configuration instance
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
