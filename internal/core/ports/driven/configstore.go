package driven

// ConfigStore is a flat key/value view of the settings file.
// Keys are dotted paths such as "deep.sub_queries".
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string value.
	GetString(key string) string

	// GetInt accepts any numeric TOML value; 0 when missing.
	GetInt(key string) int

	// GetBool returns false for a missing or non-bool value.
	GetBool(key string) bool

	// Set stores a value and persists it.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path locates the backing file, for display.
	Path() string
}
