package config

import "github.com/ilyakaznacheev/cleanenv"

type Reader interface {
	Read() (*Config, error)
}

// EnvReader reads the configuration from environment variables.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// FileReader reads the configuration from a file (yaml, json or env,
// chosen by extension), with environment variables taking precedence.
type FileReader struct {
	path string
}

func NewFileReader(path string) FileReader {
	return FileReader{path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadConfig(r.path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
