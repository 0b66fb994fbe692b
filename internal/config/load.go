package config

import (
	"github.com/jopadan/neolib/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "NEOLIB_"

// Result describes where a loaded config came from.
type Result struct {
	Config Config

	// Path is the file that was read, empty when none was found.
	Path string

	// Env lists the environment variables that were applied.
	Env []string
}

// Loader reads configuration layers.
type Loader struct {
	files *loader.FileLoader
	env   *loader.EnvLoader
}

// NewLoader creates a loader on the OS file system and environment.
func NewLoader() *Loader {
	return &Loader{
		files: loader.NewFileLoader(),
		env:   loader.NewEnvLoader(EnvPrefix),
	}
}

// NewLoaderWith creates a loader with custom sources, for tests.
func NewLoaderWith(fsys loader.FileSystem, lookup func(string) (string, bool)) *Loader {
	return &Loader{
		files: loader.NewFileLoaderWithFS(fsys),
		env:   loader.NewEnvLoaderWithLookup(EnvPrefix, lookup),
	}
}

// Load builds a config from defaults, the file at path (if non-empty and
// present) and the environment, then validates it.
func (l *Loader) Load(path string) (Result, error) {
	res := Result{Config: Default()}

	if path != "" {
		found, err := l.files.Load(path, &res.Config)
		if err != nil {
			return Result{}, err
		}
		if found {
			res.Path = path
		}
	}

	applied, err := l.env.Apply(envBindings(&res.Config)...)
	if err != nil {
		return Result{}, err
	}
	res.Env = applied

	if err := res.Config.Validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Load reads configuration using the OS file system and environment.
func Load(path string) (Config, error) {
	res, err := NewLoader().Load(path)
	return res.Config, err
}

func envBindings(c *Config) []loader.Binding {
	return []loader.Binding{
		loader.Int("GAP_SIZE", &c.Vector.GapSize),
		loader.Int("NEARNESS_FACTOR", &c.Vector.NearnessFactor),
		loader.String("LOG_LEVEL", &c.Logging.Level),
		loader.String("LOG_FORMAT", &c.Logging.Format),
		loader.String("APP_NAME", &c.App.Name),
		loader.String("APP_COMPANY", &c.App.Company),
		loader.String("DATA_DIR", &c.App.DataDir),
		loader.String("SETTINGS_DIR", &c.App.SettingsDir),
		loader.Bool("METRICS", &c.Metrics.Enabled),
	}
}
