// Package services implements the core use cases: dispatching OCR text
// to the right parsing strategy and reconciling extracted records
// against minimum-volume references.
//
// Services depend only on domain types and ports; parsers and storage
// are injected at startup.
package services
