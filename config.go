package pdflayout

// Config holds configuration for the extraction engine.
type Config struct {
	// Backend selects the extraction backend: "tabula" (default; full
	// layout analysis plus image placement) or "basic" (text only, on
	// a pure-Go text extractor).
	Backend string `json:"backend"`
}

// DefaultConfig returns a Config using the tabula backend.
func DefaultConfig() Config {
	return Config{
		Backend: "tabula",
	}
}
