package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvVarPrefix marks environment variables that become template variables.
const EnvVarPrefix = "TMPL_VAR_"

// ManifestNames are the file names Find looks for, in order.
var ManifestNames = []string{"tmpl.toml", ".tmpl.toml", "tmpl.yaml", "tmpl.yml"}

// LoadOptions tune Load.
type LoadOptions struct {
	// Path of the manifest. Empty loads defaults, env and overrides only;
	// relative dirs then resolve against the working directory.
	Path string

	// Overrides are applied last, keyed by koanf path such as
	// "variables.name" or "target.replace".
	Overrides map[string]any
}

// Find returns the first manifest present in dir, or "" when there is none.
func Find(dir string) (string, error) {
	for _, name := range ManifestNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot stat %s", path)
		}
	}
	return "", nil
}

// Load reads a manifest with its layered defaults.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Manifest
	base := "."
	if opts.Path != "" {
		parser, err := parserFor(opts.Path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(opts.Path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", opts.Path).
				WithDetail("path", opts.Path)
		}
		if err := k.Load(file.Provider(opts.Path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", opts.Path).
				WithDetail("path", opts.Path)
		}
		base = filepath.Dir(opts.Path)
		logger.Debug().Str("path", opts.Path).Msg("loaded manifest")
	}

	// 3. Environment variables
	err := k.Load(env.Provider(EnvVarPrefix, ".", func(s string) string {
		return "variables." + strings.ToLower(strings.TrimPrefix(s, EnvVarPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal manifest")
	}

	cfg.Path = opts.Path
	if cfg.Variables == nil {
		cfg.Variables = map[string]any{}
	}
	if err := cfg.resolvePaths(base); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("sources", len(cfg.Sources)).
		Int("variables", len(cfg.Variables)).
		Strs("exclude", cfg.Exclude).
		Msg("manifest ready")
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported manifest format: %s", path).
			WithDetail("path", path)
	}
}
