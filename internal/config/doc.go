// Package config loads and saves choice-ctl's persisted settings.
//
// # Settings File
//
// Settings live in $XDG_CONFIG_HOME/make-your-choice/settings.toml:
//
//	mode = "gatekeep"            # or "universal-redirect"
//	block_mode = "both"          # "both", "ping" or "service"
//	merge_unstable = true
//	selection = ["Europe (London)"]
//	nameserver = "1.1.1.1"       # resolve redirect targets directly
//	flush_commands = ["resolvectl flush-caches"]
//
// Only keys present in the file override the defaults. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
// # State
//
// The apply history is kept in $XDG_STATE_HOME/make-your-choice/history.jsonl.
// See Paths for the resolved locations.
package config
