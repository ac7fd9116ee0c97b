package types

// Model represents a recognition model resolvable from a language selector.
type Model struct {
	// Language selector this model serves.
	// example: english
	Language string `json:"language" example:"english"`
	// BCP-47 style tag the underlying engine expects.
	// example: en-US
	Tag string `json:"tag" example:"en-US"`
	// Absolute path to the model on disk.
	// example: /var/lib/transcribed/models/small-en-us
	Path string `json:"path" example:"/var/lib/transcribed/models/small-en-us"`
}
