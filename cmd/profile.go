package cmd

import (
	"io/ioutil"

	"aslc/report"

	"github.com/pelletier/go-toml"
)

// BuildProfile is the optional build configuration, loaded from the TOML file
// named by the build command's profile option.  No profile file is looked up
// automatically.
type BuildProfile struct {
	// OutputPath is where the TAC module is written.  Defaults to the source
	// path with `.t` appended.
	OutputPath string `toml:"output-path"`

	// LogLevel is one of "silent", "error", "warn", "verbose".
	LogLevel string `toml:"log-level"`

	// Debug dumps written to stdout after the corresponding phase.
	DumpAST     bool `toml:"dump-ast"`
	DumpSymbols bool `toml:"dump-symbols"`
	DumpTAC     bool `toml:"dump-tac"`
}

// DefaultProfile returns the profile used when no profile file is given.
func DefaultProfile() *BuildProfile {
	return &BuildProfile{LogLevel: "verbose"}
}

// LoadProfile loads and validates a build profile from a TOML file.
func LoadProfile(path string) (*BuildProfile, error) {
	buff, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	profile := DefaultProfile()
	if err := toml.Unmarshal(buff, profile); err != nil {
		return nil, err
	}

	if _, ok := logLevels[profile.LogLevel]; !ok {
		return nil, report.Raise(nil, "invalid log level `%s` in profile", profile.LogLevel)
	}

	return profile, nil
}

// logLevels maps profile log-level names to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}
