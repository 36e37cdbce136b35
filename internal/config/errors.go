package config

import "errors"

// ErrCorrupt means the config file exists but cannot be parsed. It is never
// silently recovered: guessing intent here risks losing key material.
var ErrCorrupt = errors.New("config file is corrupt")
