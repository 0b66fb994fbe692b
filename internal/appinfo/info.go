package appinfo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Defaults used when an option is not supplied.
const (
	DefaultName            = "<Program Name>"
	DefaultCompany         = "<Company Name>"
	DefaultCopyright       = "<Copyright>"
	DefaultPluginExtension = ".plg"
)

// Info is immutable application metadata.
type Info struct {
	Arguments         []string
	Name              string
	Company           string
	Version           Version
	Copyright         string
	ApplicationFolder string
	SettingsFolder    string
	DataFolder        string
	PluginExtension   string

	// InstanceID is unique per process.
	InstanceID uuid.UUID

	pocket bool
}

// Option configures Info.
type Option func(*Info)

// WithArguments sets the program arguments.
func WithArguments(args []string) Option {
	return func(i *Info) {
		i.Arguments = slices.Clone(args)
	}
}

// WithPocket forces pocket mode regardless of the arguments. Command line
// parsers that reject "-pocket" pass their own flag through here.
func WithPocket(on bool) Option {
	return func(i *Info) {
		i.pocket = i.pocket || on
	}
}

// WithName sets the program name.
func WithName(name string) Option {
	return func(i *Info) {
		if name != "" {
			i.Name = name
		}
	}
}

// WithCompany sets the vendor name.
func WithCompany(company string) Option {
	return func(i *Info) {
		if company != "" {
			i.Company = company
		}
	}
}

// WithVersion sets the program version.
func WithVersion(v Version) Option {
	return func(i *Info) {
		i.Version = v
	}
}

// WithCopyright sets the copyright notice.
func WithCopyright(c string) Option {
	return func(i *Info) {
		if c != "" {
			i.Copyright = c
		}
	}
}

// WithApplicationFolder overrides the working directory default.
func WithApplicationFolder(dir string) Option {
	return func(i *Info) {
		i.ApplicationFolder = dir
	}
}

// WithSettingsFolder overrides the per-user settings folder.
func WithSettingsFolder(dir string) Option {
	return func(i *Info) {
		i.SettingsFolder = dir
	}
}

// WithDataFolder overrides the data folder, which otherwise follows the
// settings folder.
func WithDataFolder(dir string) Option {
	return func(i *Info) {
		i.DataFolder = dir
	}
}

// WithPluginExtension sets the plugin file extension.
func WithPluginExtension(ext string) Option {
	return func(i *Info) {
		if ext != "" {
			i.PluginExtension = ext
		}
	}
}

// New builds Info. Unset folders are resolved from the working directory
// and the user config directory. A "-pocket" or "/pocket" argument
// (any case) keeps settings next to the application.
func New(opts ...Option) (*Info, error) {
	info := &Info{
		Name:            DefaultName,
		Company:         DefaultCompany,
		Copyright:       DefaultCopyright,
		PluginExtension: DefaultPluginExtension,
		InstanceID:      uuid.New(),
	}
	for _, opt := range opts {
		opt(info)
	}

	if info.ApplicationFolder == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		info.ApplicationFolder = wd
	}
	if info.SettingsFolder == "" {
		dir, err := SettingsFolder(info.Name, info.Company)
		if err != nil {
			return nil, err
		}
		info.SettingsFolder = dir
	}
	if info.Pocket() {
		info.SettingsFolder = info.ApplicationFolder
	}
	if info.DataFolder == "" {
		info.DataFolder = info.SettingsFolder
	}
	return info, nil
}

// Pocket reports whether the program was started in pocket mode.
func (i *Info) Pocket() bool {
	return i.pocket || slices.ContainsFunc(i.Arguments, func(arg string) bool {
		return strings.EqualFold(arg, "-pocket") || strings.EqualFold(arg, "/pocket")
	})
}

// PluginPath returns the path of a plugin called name inside dir.
func (i *Info) PluginPath(dir, name string) string {
	return filepath.Join(dir, name+i.PluginExtension)
}

// SettingsFolder returns <user config dir>/<company>/<name>.
func SettingsFolder(name, company string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, company, name), nil
}
