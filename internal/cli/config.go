package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tocview/internal/server"
	tocerr "github.com/matzehuels/tocview/pkg/errors"
	tocio "github.com/matzehuels/tocview/pkg/io"
)

// Config is the contents of config.toml. Every field is optional.
//
//	[server]
//	addr = "127.0.0.1:8080"
//	metrics = true
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	dir = "./diagrams"
//	format = "yaml"
//	# mongo_uri = "mongodb://localhost:27017"
//
//	[render]
//	view = "columns"
//	title = "Theory of Change"
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`       // File cache directory, default ~/.cache/tocview
	RedisURL string `toml:"redis_url"` // Use Redis instead of the file cache
}

// StoreConfig selects where served diagrams live.
type StoreConfig struct {
	Dir             string `toml:"dir"`
	Format          string `toml:"format"` // File format for new diagrams
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// RenderConfig holds render defaults that flags override.
type RenderConfig struct {
	View     string  `toml:"view"`
	Title    string  `toml:"title"`
	Detailed bool    `toml:"detailed"`
	Scale    float64 `toml:"scale"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: server.DefaultAddr},
		Store:  StoreConfig{Dir: ".", Format: string(tocio.FormatJSON)},
	}
}

// LoadConfig reads path over the defaults. An empty path means the XDG
// config file, which may be absent; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, tocerr.Wrap(tocerr.ErrCodeFileNotFound, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, tocerr.Wrap(tocerr.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, tocerr.New(tocerr.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if _, err := tocio.ParseFormat(cfg.Store.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}
