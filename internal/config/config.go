// Package config carries the core's only ambient, externally-tunable
// settings: a debug-verbosity level and a show-constraints toggle, plus an
// optional recursion-depth override. Nothing here is persisted by the
// core itself; it only reads what the environment or an optional project
// file hands it.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings is the small bag of diagnostic knobs the core consults. No
// file format, wire protocol, or persisted state is owned by the core
// beyond this.
type Settings struct {
	DebugLevel      int  `yaml:"debugLevel"`
	ShowConstraints bool `yaml:"showConstraints"`
	MaxRecursion    int  `yaml:"maxRecursion"`
}

// Default returns the zero-configuration settings: no debug output, no
// constraint tracing, and the default recursion-depth guard.
func Default() Settings {
	return Settings{MaxRecursion: 64}
}

// FromEnv overlays DEBUG and CORVID_SHOW_CONSTRAINTS onto s, matching the
// env vars named in the external-interfaces contract. DEBUG is parsed as
// an integer verbosity level; an unparsable or absent value leaves s
// unchanged.
func FromEnv(s Settings) Settings {
	if raw, ok := os.LookupEnv("DEBUG"); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			s.DebugLevel = n
		}
	}
	if raw, ok := os.LookupEnv("CORVID_SHOW_CONSTRAINTS"); ok {
		s.ShowConstraints = raw == "1" || raw == "true"
	}
	return s
}

// LoadFile overlays an optional corvid.yaml project file (debug level,
// show-constraints, recursion-depth override) onto s. A missing file is
// not an error — it simply leaves s as-is, since the whole file is
// optional by design.
func LoadFile(s Settings, path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	var overlay Settings
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return s, err
	}
	if overlay.DebugLevel != 0 {
		s.DebugLevel = overlay.DebugLevel
	}
	if overlay.MaxRecursion != 0 {
		s.MaxRecursion = overlay.MaxRecursion
	}
	s.ShowConstraints = s.ShowConstraints || overlay.ShowConstraints
	return s, nil
}

// Load produces the effective settings: defaults, overlaid by an optional
// project file, overlaid by the environment (environment wins, matching
// the "purely diagnostic" env vars being the most immediate override).
func Load(projectFile string) (Settings, error) {
	s := Default()
	s, err := LoadFile(s, projectFile)
	if err != nil {
		return s, err
	}
	return FromEnv(s), nil
}
