package config

// Config is the environment configuration of the jot CLI.
// Command-line flags take precedence over every field.
type Config struct {
	Store StoreConfig `env-prefix:"JOT_"`
	Log   LogConfig   `env-prefix:"JOT_LOG_"`
}

type StoreConfig struct {
	// File is the backing file. Empty means discover notes.json upwards
	// from the working directory.
	File   string `env:"FILE"`
	Format string `env:"FORMAT" validate:"omitempty,oneof=json yaml yml"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	Pretty bool   `env:"PRETTY" env-default:"false"`
}
