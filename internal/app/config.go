package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-task-manager/internal/config"
)

// MustReadConfig loads the configuration from the given file, or from
// environment variables when the path is empty.
func MustReadConfig(path string) {
	var reader config.Reader = config.NewEnvReader()
	if path != "" {
		reader = config.NewFileReader(path)
	}

	cfg, err := reader.Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to read config")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("read config")

	config.SetGlobal(cfg)
}
