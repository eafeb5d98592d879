// Package schemas embeds the JSON Schema documents shipped with the resume builder.
package schemas

import _ "embed"

// Profile is the JSON Schema for profile configuration files.
//
//go:embed profile.schema.json
var Profile string
