package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := FromMap(nil)

	assert.Equal(t, ":3040", cfg.Addr())
	assert.Equal(t, 50000.0, cfg.GetFloat("LABOR_BASE_RATE", 50000))

	src := cfg.CatalogSource()
	assert.Equal(t, "./data", src.Dir)
	assert.Empty(t, src.URL)
	assert.Empty(t, src.S3Bucket)
	assert.Equal(t, 30*time.Second, src.Timeout)
}

func TestOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"PORT":                 "8080",
		"CATALOG_URL":          "https://cdn.example.com/tables/",
		"CATALOG_LOAD_TIMEOUT": "5s",
		"PAINT_BASE_RATE":      "65000.5",
		"LOG_LEVEL":            "",
	})

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 65000.5, cfg.GetFloat("PAINT_BASE_RATE", 60000))
	assert.Equal(t, "info", cfg.GetString("LOG_LEVEL", "info"))

	src := cfg.CatalogSource()
	assert.Equal(t, "https://cdn.example.com/tables", src.URL)
	assert.Equal(t, 5*time.Second, src.Timeout)
}

func TestMalformedValuesFallBack(t *testing.T) {
	cfg := FromMap(map[string]string{
		"PORT":                 "x",
		"LABOR_BASE_RATE":      "lots",
		"CATALOG_LOAD_TIMEOUT": "soon",
	})

	assert.Equal(t, 3040, cfg.GetInt("PORT", 3040))
	assert.Equal(t, ":3040", cfg.Addr())
	assert.Equal(t, 50000.0, cfg.GetFloat("LABOR_BASE_RATE", 50000))
	assert.Equal(t, 30*time.Second, cfg.GetDuration("CATALOG_LOAD_TIMEOUT", 30*time.Second))
}

func TestAddr_RejectsOutOfRangePort(t *testing.T) {
	for _, port := range []string{"0", "-1", "70000"} {
		cfg := FromMap(map[string]string{"PORT": port})
		assert.Equal(t, ":3040", cfg.Addr(), port)
	}
	assert.Equal(t, ":80", FromMap(map[string]string{"PORT": "80"}).Addr())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CATALOG_S3_BUCKET", "bodyshop-tables")
	t.Setenv("UNRELATED", "ignored")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "bodyshop-tables", cfg.CatalogSource().S3Bucket)
	assert.Equal(t, "", cfg.GetString("UNRELATED", ""))
}
