package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./highlights-reader.db"
)

// Default limits for uploaded files and queries
const (
	DefaultMaxFileSizeBytes       = 5 * 1024 * 1024 // 5 MB
	DefaultMaxHighlightLength     = 5_000           // characters
	DefaultMaxHighlightsPerImport = 10_000
	DefaultSearchLimit            = 50
	DefaultLocale                 = "pt-BR"
)

// Browsers send an empty type for files they cannot classify, so the empty
// string is part of both lists.
const (
	defaultAllowedTypesClippings = "text/plain,text/x-txt,"
	defaultAllowedTypesJSON      = "application/json,text/plain,"
)
