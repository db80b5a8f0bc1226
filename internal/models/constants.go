package models

// Supported report output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
