// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── highlights/      # Highlight batch inserts, deletes and reader queries
//	└── audit/           # Audit event log
//
// Each sub-package provides a Repository type over the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./highlights-reader.db", logger)
//	highlightsRepo := highlights.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
// # Interface Implementations
//
//   - highlights.Repository: implements services.HighlightCreator and services.HighlightStore
//   - audit.Repository: used by audit.Service
package database
