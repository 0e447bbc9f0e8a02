// Package file implements the ConfigStore port on a TOML file.
//
// Defaults such as the expiry window and the preselected analyzer live
// in ~/.reagentcheck/config.toml and are addressed with dot-notation
// keys ("reconcile.expiry_window_days").
package file
