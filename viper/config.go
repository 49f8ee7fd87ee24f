// Package viper loads per-source settings from an INI or YAML config file.
package viper

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/xornal"
	"github.com/go-viper/encoding/ini"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override config keys.
// XORNAL_PRAZA_BASE_URL overrides praza.base_url.
const EnvPrefix = "XORNAL"

// DefaultPath is the config file read when none is given.
const DefaultPath = "config.ini"

// Section names.
const (
	PrazaSection     = "praza"
	NosdiarioSection = "nosdiario"
)

// Config holds the parsed config file.
type Config struct {
	v *viper.Viper
}

// Section is the configuration of one source.
type Section struct {
	BaseURL string

	// Source is the directory holding raw article files.
	Source string

	// Corpus is the directory receiving normalized documents.
	Corpus string

	FeedURL    string
	Categories []xornal.Category
}

// Load reads the config file at path. The format follows the file
// extension; files without a known extension are read as INI. Variables
// from a .env file in the working directory are loaded into the
// environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}

	codecs := viper.NewCodecRegistry()
	if err := codecs.RegisterCodec("ini", ini.Codec{}); err != nil {
		return nil, xornal.Wrapf(xornal.EINTERNAL, err, "cannot register ini codec")
	}

	v := viper.NewWithOptions(viper.WithCodecRegistry(codecs))
	v.SetConfigFile(path)
	v.SetConfigType(configType(path))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, xornal.Errorf(xornal.ENOTFOUND, "config file %s not found", path)
		}
		return nil, xornal.Wrapf(xornal.EINVALID, err, "cannot read config file %s", path)
	}
	return &Config{v: v}, nil
}

var configTypes = []string{"ini", "yaml", "yml", "json", "toml"}

func configType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if slices.Contains(configTypes, ext) {
		return ext
	}
	return "ini"
}

// Section returns the settings of the named source.
// Returns ENOTFOUND when the file has no such section.
func (c *Config) Section(name string) (*Section, error) {
	if !c.v.IsSet(name) {
		return nil, xornal.Errorf(xornal.ENOTFOUND, "config section %q not found", name)
	}

	s := &Section{
		BaseURL: c.v.GetString(name + ".base_url"),
		Source:  c.v.GetString(name + ".source"),
		Corpus:  c.v.GetString(name + ".corpus"),
		FeedURL: c.v.GetString(name + ".feed_url"),
	}
	if err := c.v.UnmarshalKey(name+".categories", &s.Categories); err != nil {
		return nil, xornal.Wrapf(xornal.EINVALID, err, "invalid categories in section %q", name)
	}
	for _, cat := range s.Categories {
		if cat.Name == "" || !strings.Contains(cat.URL, xornal.PagePlaceholder) {
			return nil, xornal.Errorf(xornal.EINVALID, "category %q needs a name and a url containing %s", cat.Name, xornal.PagePlaceholder)
		}
	}
	if name == PrazaSection && len(s.Categories) == 0 {
		s.Categories = DefaultPrazaCategories()
	}
	return s, nil
}

// DefaultPrazaCategories returns the Praza Pública category listings.
func DefaultPrazaCategories() []xornal.Category {
	return []xornal.Category{
		{Name: "Política", URL: "https://praza.gal/politica/todo?p={page}"},
		{Name: "Deportes", URL: "https://praza.gal/deportes/todo?p={page}"},
		{Name: "Ciencia e tecnoloxía", URL: "https://praza.gal/ciencia-e-tecnoloxia/todo?p={page}"},
		{Name: "Acontece", URL: "https://praza.gal/acontece/todo?p={page}"},
		{Name: "Cultura", URL: "https://praza.gal/cultura/todo?p={page}"},
		{Name: "Lecer", URL: "https://praza.gal/lecer/todo?p={page}"},
		{Name: "Mundo", URL: "https://praza.gal/mundo/todo?p={page}"},
		{Name: "Economía", URL: "https://praza.gal/economia/todo?p={page}"},
		{Name: "Movementos sociais", URL: "https://praza.gal/movementos-sociais/todo?p={page}"},
	}
}
