package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:   "gemini",
			Model:      "gemini-2.0-flash",
			EmbedModel: "text-embedding-004",
			Timeout:    60 * time.Second,
		},
		Corpus: CorpusConfig{
			LinkedInPath: "data/linkedin_jobs.json",
			NaukriPath:   "data/naukri_jobs.json",
			CacheDir:     "cache",
		},
		Matching: MatchingConfig{
			DefaultTopK:    5,
			MaxTopK:        20,
			MaxFeatures:    5000,
			MinDocFreq:     2,
			MaxDocFreqFrac: 0.8,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown", "csv"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero AI timeout",
			mutate:  func(c *Config) { c.AI.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server port is required",
		},
		{
			name: "no corpus sources",
			mutate: func(c *Config) {
				c.Corpus.LinkedInPath = ""
				c.Corpus.NaukriPath = ""
			},
			wantErr: "corpus source path",
		},
		{
			name:    "topK above max",
			mutate:  func(c *Config) { c.Matching.DefaultTopK = 50 },
			wantErr: "defaultTopK",
		},
		{
			name:    "bad max doc frequency",
			mutate:  func(c *Config) { c.Matching.MaxDocFreqFrac = 1.5 },
			wantErr: "maxDocFreqFrac",
		},
		{
			name:    "unsupported default format",
			mutate:  func(c *Config) { c.App.DefaultFormat = "xml" },
			wantErr: "invalid default format",
		},
		{
			name:    "tls server mode without cert",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "server" },
			wantErr: "certificate and key files are required",
		},
		{
			name:    "unknown tls mode",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "mutual" },
			wantErr: "invalid TLS mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyServerAPIKeyFallbacks(t *testing.T) {
	t.Setenv("JOBMATCH_SERVER_APIKEYS", "key-a, key-b ,key-c")

	cfg := validConfig()
	cfg.applyServerAPIKeyFallbacks()

	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Server.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
	}
	for i := range want {
		if cfg.Server.APIKeys[i] != want[i] {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], want[i])
		}
	}

	// Keys already present are not overridden.
	cfg2 := validConfig()
	cfg2.Server.APIKeys = []string{"configured"}
	cfg2.applyServerAPIKeyFallbacks()
	if len(cfg2.Server.APIKeys) != 1 || cfg2.Server.APIKeys[0] != "configured" {
		t.Errorf("configured API keys should win over env: %v", cfg2.Server.APIKeys)
	}
}

func TestApplyLegacyKeyFallbacks(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "legacy-gemini")
	t.Setenv("YOUTUBE_API_KEY", "legacy-youtube")

	cfg := validConfig()
	cfg.applyLegacyKeyFallbacks()
	if cfg.AI.APIKey != "legacy-gemini" {
		t.Errorf("AI.APIKey = %q, want legacy-gemini", cfg.AI.APIKey)
	}
	if cfg.AI.YouTube.APIKey != "legacy-youtube" {
		t.Errorf("YouTube.APIKey = %q, want legacy-youtube", cfg.AI.YouTube.APIKey)
	}

	cfg2 := validConfig()
	cfg2.AI.APIKey = "explicit"
	cfg2.applyLegacyKeyFallbacks()
	if cfg2.AI.APIKey != "explicit" {
		t.Errorf("explicit key should win over legacy env: %q", cfg2.AI.APIKey)
	}
}

func TestApplyObservabilityDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Observability.ServiceName = "jobmatch"
	cfg.applyObservabilityDefaults()
	if cfg.Observability.ServiceInstance == "" {
		t.Error("ServiceInstance should be generated when empty")
	}
	if !strings.HasPrefix(cfg.Observability.ServiceInstance, "jobmatch-") {
		t.Errorf("ServiceInstance = %q, want jobmatch- prefix", cfg.Observability.ServiceInstance)
	}

	cfg.App.LogLevel = "debug"
	cfg.applyObservabilityDefaults()
	if !cfg.Observability.ConsoleOutput {
		t.Error("debug log level should enable console output")
	}
}
