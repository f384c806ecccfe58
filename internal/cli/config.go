package cli

// This file resolves the step's inputs into a PushConfig.
// Precedence: flags > GitHub Actions inputs (INPUT_* env) > YAML config file.

import (
	"fmt"
	"os"
	"strings"

	"github.com/distribution/reference"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Input names, as declared by the action.
const (
	InputImageToPush = "image-to-push"
	InputTag         = "tag"
	InputRegistry    = "registry"
	InputUsername    = "username"
	InputPassword    = "password"
	InputLocalMatch  = "local-match"
)

const (
	defaultTag = "latest"
	// defaultLocalMatch is the name fragment that marks an image as already present in
	// podman's local storage. It is kept verbatim, typo included.
	defaultLocalMatch = "alpine:latewst"
)

// PushConfig holds the resolved inputs for a single run.
type PushConfig struct {
	ImageToPush string `yaml:"image-to-push"`
	Tag         string `yaml:"tag,omitempty"`
	Registry    string `yaml:"registry"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	LocalMatch  string `yaml:"local-match,omitempty"`
}

// ConfigSources names where inputs are read from.
type ConfigSources struct {
	File    string
	EnvFile string
	Flags   PushConfig
}

// getInput reads an Actions input the way the runner exposes it:
// INPUT_<NAME> with spaces replaced by underscores, upper-cased, whitespace trimmed.
func getInput(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(os.Getenv(key))
}

func inputsFromEnv() PushConfig {
	return PushConfig{
		ImageToPush: getInput(InputImageToPush),
		Tag:         getInput(InputTag),
		Registry:    getInput(InputRegistry),
		Username:    getInput(InputUsername),
		Password:    getInput(InputPassword),
		LocalMatch:  getInput(InputLocalMatch),
	}
}

func loadConfigFile(path string) (PushConfig, error) {
	var cfg PushConfig
	// #nosec G304 -- path is supplied by the operator running the step.
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, wrapWithSentinelAndContext(ErrReadConfigFailed, err,
			fmt.Sprintf("failed to read config file: %v", err),
			map[string]any{"path": path})
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, wrapWithSentinelAndContext(ErrUnmarshalConfigFailed, err,
			fmt.Sprintf("failed to unmarshal config file: %v", err),
			map[string]any{"path": path})
	}
	return cfg, nil
}

// overlay returns c with every non-empty field of o applied on top.
func (c PushConfig) overlay(o PushConfig) PushConfig {
	return PushConfig{
		ImageToPush: lo.CoalesceOrEmpty(o.ImageToPush, c.ImageToPush),
		Tag:         lo.CoalesceOrEmpty(o.Tag, c.Tag),
		Registry:    lo.CoalesceOrEmpty(o.Registry, c.Registry),
		Username:    lo.CoalesceOrEmpty(o.Username, c.Username),
		Password:    lo.CoalesceOrEmpty(o.Password, c.Password),
		LocalMatch:  lo.CoalesceOrEmpty(o.LocalMatch, c.LocalMatch),
	}
}

// Complete applies defaults.
func (c PushConfig) Complete() PushConfig {
	c.Tag = lo.CoalesceOrEmpty(c.Tag, defaultTag)
	c.LocalMatch = lo.CoalesceOrEmpty(c.LocalMatch, defaultLocalMatch)
	return c
}

// Validate checks that every required input is present. Values are passed to podman as given.
func (c PushConfig) Validate() error {
	required := []lo.Tuple2[string, string]{
		lo.T2(InputImageToPush, c.ImageToPush),
		lo.T2(InputRegistry, c.Registry),
		lo.T2(InputUsername, c.Username),
		lo.T2(InputPassword, c.Password),
	}
	for _, input := range required {
		if input.B == "" {
			return wrapWithSentinelAndContext(ErrInputRequired, nil,
				fmt.Sprintf("Input required and not supplied: %s", input.A),
				map[string]any{"input": input.A})
		}
	}
	return nil
}

// CheckReference reports whether image-to-push and tag form a normalized
// repository:tag reference. It is diagnostic only: podman also accepts image IDs
// and other forms this rejects.
func (c PushConfig) CheckReference() error {
	named, err := reference.ParseNormalizedNamed(c.ImageToPush)
	if err != nil {
		return wrapWithSentinelAndContext(ErrInvalidImageReference, err,
			fmt.Sprintf("invalid %s %q: %v", InputImageToPush, c.ImageToPush, err),
			map[string]any{"input": InputImageToPush})
	}
	if _, err := reference.WithTag(reference.TrimNamed(named), c.Tag); err != nil {
		return wrapWithSentinelAndContext(ErrInvalidImageReference, err,
			fmt.Sprintf("invalid %s %q: %v", InputTag, c.Tag, err),
			map[string]any{"input": InputTag})
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c PushConfig) Redacted() PushConfig {
	if c.Password != "" {
		c.Password = redactedValue
	}
	return c
}

// ResolvePushConfig merges all sources, applies defaults and validates the result.
func ResolvePushConfig(src ConfigSources) (*PushConfig, error) {
	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil {
			return nil, wrapWithSentinelAndContext(ErrLoadEnvFileFailed, err,
				fmt.Sprintf("failed to load env file: %v", err),
				map[string]any{"path": src.EnvFile})
		}
	}

	var cfg PushConfig
	if src.File != "" {
		fileCfg, err := loadConfigFile(src.File)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	cfg = cfg.overlay(inputsFromEnv()).overlay(src.Flags).Complete()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindInputFlags registers the input flags shared by push and config.
func bindInputFlags(cmd *cobra.Command, src *ConfigSources) {
	cmd.Flags().StringVar(&src.Flags.ImageToPush, InputImageToPush, "", "Local image to push (env INPUT_IMAGE-TO-PUSH)")
	cmd.Flags().StringVar(&src.Flags.Tag, InputTag, "", "Image tag (default \"latest\")")
	cmd.Flags().StringVar(&src.Flags.Registry, InputRegistry, "", "Destination registry URL")
	cmd.Flags().StringVar(&src.Flags.Username, InputUsername, "", "Registry username")
	cmd.Flags().StringVar(&src.Flags.Password, InputPassword, "", "Registry password (prefer env INPUT_PASSWORD)")
	cmd.Flags().StringVar(&src.Flags.LocalMatch, InputLocalMatch, "", "Name fragment that marks the image as present in local storage")
	cmd.Flags().StringVar(&src.File, "config", "", "Path to a YAML file with inputs")
	cmd.Flags().StringVar(&src.EnvFile, "env-file", "", "Path to a .env file loaded before reading INPUT_* variables")
	_ = cmd.Flags().MarkHidden(InputLocalMatch)
}
