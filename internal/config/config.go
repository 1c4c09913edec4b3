package config

import (
	"strings"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Upload
		Locale
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // reject imports and deletes
	}
	Database struct {
		Path        string
		SearchLimit int // Max rows returned by a highlight search
	}
	// Upload holds the import limits. It is read once at startup and
	// passed by value to the parser and the import service.
	Upload struct {
		MaxFileSizeBytes       int64
		MaxHighlightLength     int // characters
		MaxHighlightsPerImport int
		AllowedTypesClippings  []string
		AllowedTypesJSON       []string
	}
	Locale struct {
		Default string
	}
	Log struct {
		Level       string
		Development bool
	}
)

// DefaultUpload returns the upload limits used when nothing is configured.
func DefaultUpload() Upload {
	return Upload{
		MaxFileSizeBytes:       DefaultMaxFileSizeBytes,
		MaxHighlightLength:     DefaultMaxHighlightLength,
		MaxHighlightsPerImport: DefaultMaxHighlightsPerImport,
		AllowedTypesClippings:  splitTypes(defaultAllowedTypesClippings),
		AllowedTypesJSON:       splitTypes(defaultAllowedTypesJSON),
	}
}

// splitTypes splits a comma separated MIME list, keeping empty entries.
func splitTypes(s string) []string {
	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		types = append(types, strings.ToLower(strings.TrimSpace(p)))
	}
	return types
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("read_only", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("search_limit", DefaultSearchLimit)

	// Upload limits
	v.SetDefault("upload_max_file_size_bytes", DefaultMaxFileSizeBytes)
	v.SetDefault("upload_max_highlight_length", DefaultMaxHighlightLength)
	v.SetDefault("upload_max_highlights_per_import", DefaultMaxHighlightsPerImport)
	v.SetDefault("upload_allowed_types_clippings", defaultAllowedTypesClippings)
	v.SetDefault("upload_allowed_types_json", defaultAllowedTypesJSON)

	v.SetDefault("default_locale", DefaultLocale)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY"),
		},
		Database: Database{
			Path:        v.GetString("DATABASE_PATH"),
			SearchLimit: v.GetInt("SEARCH_LIMIT"),
		},
		Upload: Upload{
			MaxFileSizeBytes:       v.GetInt64("UPLOAD_MAX_FILE_SIZE_BYTES"),
			MaxHighlightLength:     v.GetInt("UPLOAD_MAX_HIGHLIGHT_LENGTH"),
			MaxHighlightsPerImport: v.GetInt("UPLOAD_MAX_HIGHLIGHTS_PER_IMPORT"),
			AllowedTypesClippings:  splitTypes(v.GetString("UPLOAD_ALLOWED_TYPES_CLIPPINGS")),
			AllowedTypesJSON:       splitTypes(v.GetString("UPLOAD_ALLOWED_TYPES_JSON")),
		},
		Locale: Locale{
			Default: v.GetString("DEFAULT_LOCALE"),
		},
		Log: Log{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
	}
}
