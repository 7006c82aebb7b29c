package config

const (
	defaultEngineCommand    = "cargo-engine"
	defaultLockPollMillis   = 100
	defaultTermColor        = "auto"
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
	defaultLogOutput        = "stderr"
	defaultConfigFileName   = "config.toml"
	defaultCargoHomeRelPath = "~/.cargo"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Engine: Engine{
			Command:        defaultEngineCommand,
			LockPollMillis: defaultLockPollMillis,
		},
		Term: Term{
			Color: defaultTermColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Output: defaultLogOutput,
		},
	}
}
