package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment keys read at startup.
var envVars = []string{
	"PORT",
	"DATABASE_URL",
	"CATALOG_DIR",
	"CATALOG_URL",
	"CATALOG_S3_BUCKET",
	"CATALOG_S3_PREFIX",
	"CATALOG_S3_ENDPOINT",
	"CATALOG_LOAD_TIMEOUT",
	"AWS_REGION",
	"LABOR_BASE_RATE",
	"PAINT_BASE_RATE",
	"ADMIN_USER",
	"ADMIN_PASSWORD_HASH",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"SESSION_IDLE_TIMEOUT",
}

const defaultPort = 3040

type Config struct {
	values map[string]string
}

func Load() (*Config, error) {
	cfg := &Config{
		values: make(map[string]string),
	}

	cfg.loadFromEnv()
	return cfg, nil
}

// FromMap builds a config from explicit values, mostly for tests.
func FromMap(values map[string]string) *Config {
	cfg := &Config{values: make(map[string]string, len(values))}
	for k, v := range values {
		if v != "" {
			cfg.values[k] = v
		}
	}
	return cfg
}

func (c *Config) loadFromEnv() {
	for _, envVar := range envVars {
		if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
			c.values[envVar] = value
		}
	}
}

func (c *Config) GetString(key, defaultValue string) string {
	if value, exists := c.values[key]; exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetInt(key string, defaultValue int) int {
	return parsed(c, key, defaultValue, strconv.Atoi)
}

func (c *Config) GetFloat(key string, defaultValue float64) float64 {
	return parsed(c, key, defaultValue, func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
}

func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	return parsed(c, key, defaultValue, time.ParseDuration)
}

// parsed returns defaultValue when key is unset or does not parse.
func parsed[T any](c *Config, key string, defaultValue T, parse func(string) (T, error)) T {
	value, exists := c.values[key]
	if !exists {
		return defaultValue
	}
	v, err := parse(value)
	if err != nil {
		return defaultValue
	}
	return v
}

// Addr returns the listen address, ":3040" unless PORT holds a valid port.
func (c *Config) Addr() string {
	port := c.GetInt("PORT", defaultPort)
	if port <= 0 || port > 65535 {
		port = defaultPort
	}
	return ":" + strconv.Itoa(port)
}

// CatalogSource describes where the static lookup tables come from.
// Precedence: S3 bucket, then base URL, then local directory.
type CatalogSource struct {
	Dir      string
	URL      string
	S3Bucket string
	S3Prefix string
	Endpoint string
	Region   string
	Timeout  time.Duration
}

func (c *Config) CatalogSource() CatalogSource {
	return CatalogSource{
		Dir:      c.GetString("CATALOG_DIR", "./data"),
		URL:      strings.TrimRight(c.GetString("CATALOG_URL", ""), "/"),
		S3Bucket: c.GetString("CATALOG_S3_BUCKET", ""),
		S3Prefix: c.GetString("CATALOG_S3_PREFIX", ""),
		Endpoint: c.GetString("CATALOG_S3_ENDPOINT", ""),
		Region:   c.GetString("AWS_REGION", ""),
		Timeout:  c.GetDuration("CATALOG_LOAD_TIMEOUT", 30*time.Second),
	}
}
