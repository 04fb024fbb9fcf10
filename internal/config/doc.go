// Package config defines configuration structures for the oidl CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (OIDL_ prefix)
//   - YAML configuration file
//
// Precedence, lowest to highest: defaults, config file, environment,
// flags (merged last via Config.Merge).
//
// # Structure
//
//	type Config struct {
//	    Annotations     string
//	    Labelmap        string
//	    Images          string
//	    OutputDir       string
//	    Objects         []string
//	    MaxImages       int
//	    Workers         int
//	    Permissive      bool
//	    ExcludeOccluded bool
//	    Progress        bool
//	    Seed            int64
//	    HTTPTimeout     time.Duration
//	}
package config
