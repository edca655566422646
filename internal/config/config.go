// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/usestring/har2raml/internal/logging"
	"github.com/usestring/har2raml/pkg/client"
	"github.com/usestring/har2raml/pkg/raml"
)

// Conversion defaults
const (
	DefaultLoadWorkers         = 8
	DefaultSchemaCacheMaxItems = 256
	DefaultMergeMinSiblings    = 2
)

// Config holds all configuration for the converter and the MCP server.
type Config struct {
	Title   string // HAR2RAML_TITLE, default "RAML API"
	Indent  string // HAR2RAML_INDENT, default two spaces; a number means that many spaces, "tab" a tab
	BaseURI string // HAR2RAML_BASE_URI, default "" (keep every call)

	LoadWorkers         int  // LOAD_WORKERS, default 8
	SchemaCacheMaxItems int  // SCHEMA_CACHE_MAX_ITEMS, default 256
	GreedyRefine        bool // GREEDY_REFINE, default false
	MergeIDs            bool // MERGE_IDS, default false
	MergeMinSiblings    int  // MERGE_MIN_SIBLINGS, default 2
	VerifySchemas       bool // VERIFY_SCHEMAS, default false

	// Example compaction (0 disables each limit)
	ExampleMaxArrayItems int // EXAMPLE_MAX_ARRAY_ITEMS
	ExampleMaxStringLen  int // EXAMPLE_MAX_STRING_LEN

	PowHTTPBaseURL    string        // POWHTTP_BASE_URL, default "http://localhost:7777"
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 10000ms (10s)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Title:   getEnvString("HAR2RAML_TITLE", raml.DefaultTitle),
		Indent:  getEnvIndent("HAR2RAML_INDENT", raml.DefaultIndent),
		BaseURI: getEnvString("HAR2RAML_BASE_URI", ""),

		LoadWorkers:         getEnvInt("LOAD_WORKERS", DefaultLoadWorkers),
		SchemaCacheMaxItems: getEnvInt("SCHEMA_CACHE_MAX_ITEMS", DefaultSchemaCacheMaxItems),
		GreedyRefine:        getEnvBool("GREEDY_REFINE", false),
		MergeIDs:            getEnvBool("MERGE_IDS", false),
		MergeMinSiblings:    getEnvInt("MERGE_MIN_SIBLINGS", DefaultMergeMinSiblings),
		VerifySchemas:       getEnvBool("VERIFY_SCHEMAS", false),

		ExampleMaxArrayItems: getEnvInt("EXAMPLE_MAX_ARRAY_ITEMS", 0),
		ExampleMaxStringLen:  getEnvInt("EXAMPLE_MAX_STRING_LEN", 0),

		PowHTTPBaseURL:    getEnvString("POWHTTP_BASE_URL", client.DefaultBaseURL),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 10000),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Logging returns the logging settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}

// getEnvIndent reads an indentation unit: a count of spaces, "tab", or the literal unit.
func getEnvIndent(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return ParseIndent(v)
}

// ParseIndent interprets an indentation setting. "4" is four spaces and
// "tab" is a tab; anything else is used verbatim.
func ParseIndent(v string) string {
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return strings.Repeat(" ", n)
	}
	if strings.EqualFold(v, "tab") {
		return "\t"
	}
	return v
}
