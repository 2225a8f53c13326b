// Package resources embeds the built-in command catalog.
package resources

import "embed"

// CatalogDir is the directory of Catalog holding the catalog files.
const CatalogDir = "commands"

//go:embed commands/*.yaml
var Catalog embed.FS
