package pdflayout

import "github.com/gaogushenling/pdflayout/extract"

// ErrUnknownBackend is returned by New when cfg.Backend names a backend
// that is not registered.
var ErrUnknownBackend = extract.ErrUnknownBackend
