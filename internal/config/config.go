package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/noogen-projects/md-cli-test/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	Documents   []string

	// Program under test
	BinaryAlias string
	BinaryName  string
	BinDirs     []string
	Timeout     time.Duration

	// Environment overrides applied to every case
	Envs    []domain.EnvVar
	EnvFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	ResultsDSN     string

	// Logging settings
	LogLevel   string
	LogFile    string
	LogJournal bool

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	BinaryAlias  string
	BinaryName   string
	BinDirs      []string
	Envs         []string
	EnvFile      string
	Timeout      time.Duration
	ResultsDSN   string
	LogLevel     string
	LogFile      string
	LogJournal   bool
	NameFilter   string
	Section      string
	FailFast     bool
	Watch        bool
	TestCases    bool
	NoProgress   bool
	OpenFailures bool
	OnlyFailed   bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply stores flags and copies every flag that was set over the defaults
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags

	if flags.BinaryAlias != "" {
		c.BinaryAlias = flags.BinaryAlias
	}
	if flags.BinaryName != "" {
		c.BinaryName = flags.BinaryName
	}
	if len(flags.BinDirs) > 0 {
		c.BinDirs = append([]string(nil), flags.BinDirs...)
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.EnvFile != "" {
		c.EnvFile = flags.EnvFile
	}
	if flags.ResultsDSN != "" {
		c.ResultsDSN = flags.ResultsDSN
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	c.LogJournal = c.LogJournal || flags.LogJournal

	for _, raw := range flags.Envs {
		env, err := ParseEnv(raw)
		if err != nil {
			return err
		}
		c.Envs = append(c.Envs, env)
	}
	return nil
}

// ParseEnv parses a KEY=VALUE pair
func ParseEnv(raw string) (domain.EnvVar, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return domain.EnvVar{}, fmt.Errorf("invalid environment override %q, expected KEY=VALUE", raw)
	}
	return domain.EnvVar{Key: key, Value: value}, nil
}

// GetDocuments returns the documents or directories to test, relative to the project path
func (c *Config) GetDocuments() []string {
	docs := c.Documents
	if len(docs) == 0 {
		docs = []string{DefaultDocument}
	}

	resolved := make([]string, 0, len(docs))
	for _, doc := range docs {
		if filepath.IsAbs(doc) {
			resolved = append(resolved, doc)
			continue
		}
		resolved = append(resolved, filepath.Join(c.ProjectPath, doc))
	}
	return resolved
}

// GetEnvs returns the environment overrides for every case: the entries of
// the env file sorted by key, followed by the explicit overrides in order.
func (c *Config) GetEnvs() ([]domain.EnvVar, error) {
	var envs []domain.EnvVar

	if c.EnvFile != "" {
		values, err := godotenv.Read(c.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", c.EnvFile, err)
		}
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			envs = append(envs, domain.EnvVar{Key: key, Value: values[key]})
		}
	}

	return append(envs, c.Envs...), nil
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetResultsDSN returns the MySQL DSN for results, from flags or the environment
func (c *Config) GetResultsDSN() string {
	if c.ResultsDSN != "" {
		return c.ResultsDSN
	}
	return os.Getenv(ResultsDSNEnv)
}

// PackageBinaryName derives the default program name from the main module
// of the running build, the way `go install` names binaries.
func PackageBinaryName() (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		return "", fmt.Errorf("build info is not available, set the binary name explicitly")
	}
	name := path.Base(info.Main.Path)
	if isMajorVersion(name) {
		name = path.Base(path.Dir(info.Main.Path))
	}
	return name, nil
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
