// Package config locates and parses the pnp.toml file that turns a
// directory into a page workspace. The configuration decides which store
// the CLI talks to (a live site over REST, or a local mirror directory)
// and which canvas format rendered pages advertise.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
	"github.com/pelletier/go-toml/v2"
)

// How many parent directories to traverse before considering a directory as not a pnp workspace
const maxDepth = 10

// Name of the workspace configuration file
const ConfigFilename = "pnp.toml"

// Default pnp.toml content
const DefaultConfig = `
[local]
dir = "pages"

[format]
data_version = "1.0"
text_editor = "CKEditor"
`

type Config struct {
	// Absolute top directory containing the pnp.toml file
	RootDirectory string

	ConfigFile ConfigFile
}

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Site   ConfigSite
	Local  ConfigLocal
	Format ConfigFormat
}
type ConfigSite struct {
	URL      string
	Library  string
	TokenEnv string `toml:"token_env"`
}
type ConfigLocal struct {
	Dir string
}
type ConfigFormat struct {
	DataVersion string `toml:"data_version"`
	TextEditor  string `toml:"text_editor"`
}

// Remote reports whether the workspace targets a live site instead of the
// local mirror directory.
func (f *ConfigFile) Remote() bool {
	return f.Site.URL != ""
}

// ConfigureSite points the workspace at a live site.
func (f *ConfigFile) ConfigureSite(url, library, tokenEnv string) *ConfigFile {
	f.Site = ConfigSite{
		URL:      url,
		Library:  library,
		TokenEnv: tokenEnv,
	}
	return f
}

// ConfigureLocal points the workspace at a local mirror directory.
func (f *ConfigFile) ConfigureLocal(dir string) *ConfigFile {
	f.Site = ConfigSite{}
	f.Local = ConfigLocal{
		Dir: dir,
	}
	return f
}

// Format returns the canvas format rendered pages must advertise. Zero
// fields fall back to the platform defaults when the page is created.
func (c *Config) Format() canvas.Format {
	return canvas.Format{
		DataVersion: c.ConfigFile.Format.DataVersion,
		TextEditor:  c.ConfigFile.Format.TextEditor,
	}
}

// Library returns the document library receiving new pages.
func (c *Config) Library() string {
	if c.ConfigFile.Site.Library != "" {
		return c.ConfigFile.Site.Library
	}
	return pages.DefaultLibrary
}

// LocalDir returns the directory mirroring pages on disk, resolved
// against the workspace root when relative.
func (c *Config) LocalDir() string {
	dir := c.ConfigFile.Local.Dir
	if dir == "" {
		dir = "pages"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.RootDirectory, dir)
	}
	return dir
}

// NewStore returns the page store the workspace is wired to. A configured
// site URL selects the REST store with the bearer token read from the
// environment; otherwise pages live under the local directory, created on
// first use.
func (c *Config) NewStore() (pages.Store, error) {
	if c.ConfigFile.Remote() {
		store := pages.NewRESTStore(c.ConfigFile.Site.URL)
		if env := c.ConfigFile.Site.TokenEnv; env != "" {
			store.Token = os.Getenv(env)
		}
		return store, nil
	}
	dir := c.LocalDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local pages directory: %w", err)
	}
	return pages.NewFSStore(dir)
}

// NewService returns a page service bound to the configured store,
// library and format.
func (c *Config) NewService() (*pages.Service, error) {
	store, err := c.NewStore()
	if err != nil {
		return nil, err
	}
	return pages.NewService(store,
		pages.WithFormat(c.Format()),
		pages.WithLibrary(c.Library())), nil
}

// ReadConfigFromDirectory loads the configuration by searching for a
// pnp.toml file in the given directory or any parent directory. It
// returns a nil configuration when no pnp.toml is found.
func ReadConfigFromDirectory(path string) (*Config, error) {
	rootPath := path
	i := 0 // Safeguard to not go up too far
	for {
		i++
		if i > maxDepth {
			return nil, nil
		}
		configPath := filepath.Join(rootPath, ConfigFilename)
		_, err := os.Stat(configPath)
		if os.IsNotExist(err) {
			if len(strings.Split(rootPath, string(os.PathSeparator))) <= 2 {
				// Root directory detected
				return nil, nil
			}
			rootPath = filepath.Clean(filepath.Join(rootPath, ".."))
		} else if err != nil {
			return nil, fmt.Errorf("error while searching for configuration file: %v", err)
		} else {
			break
		}
	}

	content, err := os.ReadFile(filepath.Join(rootPath, ConfigFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %v", ConfigFilename, err)
	}
	configFile, err := parseConfigFile(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s file: %v", ConfigFilename, err)
	}

	return &Config{
		RootDirectory: rootPath,
		ConfigFile:    *configFile,
	}, nil
}

// InitConfigFromDirectory creates a fresh workspace in the given
// directory with the default configuration.
func InitConfigFromDirectory(path string) (*Config, error) {
	currentConfig, err := ReadConfigFromDirectory(path)
	if err != nil {
		return nil, err
	}
	if currentConfig != nil {
		// Do not override current configuration
		return nil, fmt.Errorf("current configuration detected")
	}

	configPath := filepath.Join(path, ConfigFilename)
	if err := os.WriteFile(configPath, []byte(DefaultConfig), 0644); err != nil {
		return nil, err
	}

	config, err := ReadConfigFromDirectory(path)
	if err != nil {
		return nil, err
	}

	// Create the local pages directory eagerly so a pull has somewhere to land
	if err := os.MkdirAll(config.LocalDir(), 0755); err != nil {
		return nil, err
	}

	return config, nil
}

func parseConfigFile(content string) (*ConfigFile, error) {
	r := strings.NewReader(content)
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	var result ConfigFile
	err := d.Decode(&result)
	return &result, err
}
