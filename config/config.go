package config

import (
	"os"

	"torrentmeta/bencode"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode      string `yaml:"mode"`
	MaxDepth  int    `yaml:"max_depth"`
	Workers   int    `yaml:"workers"`
	QueueSize int    `yaml:"queue_size"`
	CacheTTL  int    `yaml:"cache_ttl"`
	CacheSize int    `yaml:"cache_size"`
	BloomBits uint64 `yaml:"bloom_bits"`
	BloomPath string `yaml:"bloom_path"`
}

func Default() *Config {
	return &Config{
		Mode:      "strict",
		Workers:   4,
		QueueSize: 256,
		CacheTTL:  300,
		CacheSize: 1024,
		BloomBits: 1 << 20,
	}
}

func ReadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeOptions maps the config onto decoder options. Anything other
// than "lenient" means strict.
func (c *Config) DecodeOptions() bencode.Options {
	opts := bencode.Options{MaxDepth: c.MaxDepth}
	if c.Mode == "lenient" {
		opts.Mode = bencode.ModeLenient
	}
	return opts
}
