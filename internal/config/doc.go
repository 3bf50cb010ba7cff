// Package config locates, bootstraps and loads perch configuration.
//
// # Overview
//
// Everything perch keeps on disk lives below one config root. Paths resolves
// that root and the fixed locations inside it; Load turns the config file and
// the themes directory into one immutable Config value. A reload builds a new
// Config and the caller swaps it in wholesale.
//
// # Directory Layout
//
//	<root>/config.toml    main configuration
//	<root>/config.yaml    legacy file, detected but never read
//	<root>/themes/*.toml  one theme per file
//	<root>/sounds/        notification sounds
//	<root>/prefs.toml     inspector preferences
//	<root>/perch.log      log file while the TUI is running
//
// The root is chosen in this order:
//
//  1. An explicit root passed to NewPaths (the --config-dir flag)
//  2. $PERCH_CONFIG_DIR
//  3. $XDG_CONFIG_HOME/perch
//  4. os.UserConfigDir()/perch
//  5. ~/.config/perch
//
// Directory accessors create the directory they return. Failing to create one
// panics, since nothing else can work without a writable root.
//
// # Loading
//
// Load runs these steps and stops at the first failure:
//
//  1. Read config.toml (KindRead)
//  2. Decode over the section defaults and validate (KindParse)
//  3. Read server password files (KindIO, or KindParse for a secret given twice)
//  4. Load notification sounds from the sounds directory (KindLoadSounds)
//  5. Scan the themes directory
//
// Step 5 never fails the load. If the themes directory cannot be listed the
// built-in theme is used alone, and unreadable theme files are skipped. Both
// are reported to the logger given with WithLogger.
//
// # Theme Selection
//
// The top-level theme key names a file in the themes directory, with or
// without its .toml extension. The first file in directory order that matches
// becomes Themes.Default. When nothing matches, the built-in Ferra theme is
// the default. The catalog in Themes.All always holds at least one theme: the
// built-in theme is appended unless ferra.toml itself was read.
//
// # First Run
//
// CreateInitialConfig writes an embedded template with a random nickname of
// the form perchNNNN, and InstallDefaultTheme writes ferra.toml. Neither
// overwrites an existing file and neither returns an error. The returned
// Bootstrap records what happened so callers can log it.
//
// # Errors
//
// Every failure from Load is a *Error carrying one of four kinds. Match on
// the kind with KindOf or errors.As; the message text is whatever the cause
// reported and is not stable.
package config
