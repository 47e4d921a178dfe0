// Package config handles configuration loading and merging for packrun.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--root, --depth, --tool, --no-clean, --timeout, --no-color, --debug)
//  2. Environment variables (PACKRUN_*, NO_COLOR), optionally seeded from a .env file
//  3. YAML config file (--config path, .packrun.yaml in the working directory, or
//     $XDG_CONFIG_HOME/packrun/config.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Environment Variables
//
//   - PACKRUN_ROOT: search root for sources
//   - PACKRUN_DEPTH: search depth, 0 to 16
//   - PACKRUN_TOOL: packaging command
//   - PACKRUN_NO_CLEAN: set to "true" or "1" to keep intermediate tool state
//   - PACKRUN_TIMEOUT: per-job time limit, e.g. "10m"
//   - PACKRUN_NO_COLOR or NO_COLOR: disable colors
//   - PACKRUN_DEBUG: set to any non-empty value to enable debug logging
//
// A .env file in the working directory is read first. Variables already set in
// the process environment win over it.
package config
