package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"e2fn/internal/naming"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const DefaultPostfix = "e2fs"

// Config holds raw settings as collected from the config file, the
// environment and command line flags. Job turns it into a validated run.
type Config struct {
	SourceDir  string `yaml:"source"`
	Format     string `yaml:"format"`
	Postfix    string `yaml:"postfix"`
	Verbose    bool   `yaml:"verbose"`
	DryRun     bool   `yaml:"dry_run"`
	Strict     bool   `yaml:"strict"`
	IgnoreCase bool   `yaml:"ignore_case"`
	VerifyHash bool   `yaml:"verify_hash"`
	NoProgress bool   `yaml:"no_progress"`
	LogFile    string `yaml:"log_file"`
	LogJSON    bool   `yaml:"log_json"`
	ConfigFile string `yaml:"-"`
}

// Job is the immutable description of one batch.
type Job struct {
	SourceDir  string
	DestDir    string
	Format     *naming.Formatter
	Verbose    bool
	DryRun     bool
	Strict     bool
	FoldCase   bool
	VerifyHash bool
}

// ErrSourceNotFound is wrapped by the ValidationError returned when the
// source directory does not exist.
var ErrSourceNotFound = errors.New("source directory does not exist")

type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func Default() Config {
	return Config{Postfix: DefaultPostfix}
}

func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.SourceDir, "source", "s", "", "directory with images")
	fs.StringVarP(&cfg.Format, "format", "f", "", "strftime format of target file names, e.g. %Y%m%d_%H%M%S")
	fs.StringVarP(&cfg.Postfix, "postfix", "p", DefaultPostfix, "suffix of the target directory name")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print a detailed report")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "resolve names without copying")
	fs.BoolVar(&cfg.Strict, "strict", false, "abort on the first malformed timestamp")
	fs.BoolVar(&cfg.IgnoreCase, "ignore-case", false, "also match .JPG and .JPEG")
	fs.BoolVar(&cfg.VerifyHash, "verify-hash", false, "compare checksums of copies")
	fs.BoolVar(&cfg.NoProgress, "no-progress", false, "disable the interactive progress view")
	fs.StringVar(&cfg.LogFile, "log-file", "", "append log events to this file")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "write the log file as JSON lines")
}

// Load merges defaults, the optional config file, E2FN_* variables and the
// flags the user actually set, in that order.
func Load(fs *pflag.FlagSet, flagged Config) (Config, error) {
	cfg := Default()
	if flagged.ConfigFile != "" {
		if err := LoadFile(flagged.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
		cfg.ConfigFile = flagged.ConfigFile
	}
	applyEnv(&cfg)

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "source":
			cfg.SourceDir = flagged.SourceDir
		case "format":
			cfg.Format = flagged.Format
		case "postfix":
			cfg.Postfix = flagged.Postfix
		case "verbose":
			cfg.Verbose = flagged.Verbose
		case "dry-run":
			cfg.DryRun = flagged.DryRun
		case "strict":
			cfg.Strict = flagged.Strict
		case "ignore-case":
			cfg.IgnoreCase = flagged.IgnoreCase
		case "verify-hash":
			cfg.VerifyHash = flagged.VerifyHash
		case "no-progress":
			cfg.NoProgress = flagged.NoProgress
		case "log-file":
			cfg.LogFile = flagged.LogFile
		case "log-json":
			cfg.LogJSON = flagged.LogJSON
		}
	})
	return cfg, nil
}

func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := envOrEmpty("E2FN_SOURCE"); v != "" {
		cfg.SourceDir = v
	}
	if v := envOrEmpty("E2FN_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := envOrEmpty("E2FN_POSTFIX"); v != "" {
		cfg.Postfix = v
	}
	if envTruthy("E2FN_VERBOSE") {
		cfg.Verbose = true
	}
}

// Job validates the settings and resolves the source and destination paths.
func (c Config) Job() (Job, error) {
	if c.SourceDir == "" {
		return Job{}, &ValidationError{Field: "source", Message: "source directory is required"}
	}
	if c.Format == "" {
		return Job{}, &ValidationError{Field: "format", Message: "format is required"}
	}
	if c.Postfix == "" || strings.ContainsAny(c.Postfix, `/\`) {
		return Job{}, &ValidationError{Field: "postfix", Message: fmt.Sprintf("invalid postfix %q", c.Postfix)}
	}

	source, err := resolveDir(c.SourceDir)
	if err != nil {
		return Job{}, &ValidationError{Field: "source", Message: err.Error(), Err: err}
	}

	formatter, err := naming.NewFormatter(c.Format)
	if err != nil {
		return Job{}, &ValidationError{Field: "format", Message: err.Error()}
	}

	return Job{
		SourceDir:  source,
		DestDir:    DestinationFor(source, c.Postfix),
		Format:     formatter,
		Verbose:    c.Verbose,
		DryRun:     c.DryRun,
		Strict:     c.Strict,
		FoldCase:   c.IgnoreCase,
		VerifyHash: c.VerifyHash,
	}, nil
}

// DestinationFor names the sibling directory "<source>.<postfix>".
func DestinationFor(source, postfix string) string {
	return filepath.Clean(source) + "." + postfix
}

func resolveDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", path)
	}
	return resolved, nil
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
