package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the front end.
type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	Analyzer struct {
		// BaseURL points at the analysis service. The /analyze endpoint
		// is resolved relative to it.
		BaseURL string `yaml:"baseURL"`
		// TimeoutSeconds of 0 leaves the transport default in place.
		TimeoutSeconds int `yaml:"timeoutSeconds"`
	} `yaml:"analyzer"`

	Session struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttlMinutes"`
	} `yaml:"session"`
}

const (
	defaultPort            = 3000
	defaultAnalyzerBaseURL = "http://127.0.0.1:8000"
	defaultSessionTTL      = 60
)

// Load reads the YAML config file at path, then applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		log.Printf("[config] %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := getEnvInt("PORT", 0); v > 0 {
		c.Server.Port = v
	}
	if v := os.Getenv("ANALYZER_BASE_URL"); v != "" {
		c.Analyzer.BaseURL = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				c.Server.CORSOrigins = append(c.Server.CORSOrigins, o)
			}
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Analyzer.BaseURL == "" {
		c.Analyzer.BaseURL = defaultAnalyzerBaseURL
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = defaultSessionTTL
	}
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
