// Package importers converts uploaded file content into candidate highlights.
//
// # Architecture
//
// Every import mode follows the same flow:
//
//	File content → Converter → Batch (candidates + skipped count) → services.ImportService → Storage
//
// A Converter only understands one file format. It never touches storage and
// never decides batch-level policy (size caps, empty batches); that belongs to
// services.ImportService.
//
// # Converters
//
//   - ClippingsConverter (converter.go) - Kindle "My Clippings.txt" text, via kindle.Parser
//   - JSONConverter (json.go) - a JSON array of {bookTitle, author, text, location} objects
//
// # Adding a New Import Mode
//
//  1. Create a new file (e.g., kobo.go)
//  2. Implement the Converter interface:
//
//     type KoboConverter struct{}
//
//     func (c *KoboConverter) Convert(content string) (Batch, error) {
//     // Transform the export into []entities.HighlightInput
//     return Batch{Highlights: highlights}, nil
//     }
//
//     // Compile-time check
//     var _ Converter = (*KoboConverter)(nil)
//
//  3. Register the converter for a new services.Mode in services.NewImportService.
package importers
