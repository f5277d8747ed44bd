// Package utils provides common utility functions for the catalog exporter.
// It includes loose type conversion for schema-flexible source documents and
// small path helpers that don't fit into domain-specific packages.
package utils
