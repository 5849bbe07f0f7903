package config

const (
	defaultConfigPath       = "~/.config/seratail/config.toml"
	defaultSeratoDir        = "~/Music/_Serato_"
	defaultSessionsSubdir   = "History/Sessions"
	defaultSessionExtension = ".session"
	defaultLogDir           = "~/.local/share/seratail/logs"
	defaultDisplayCount     = 1
	defaultPollInterval     = 2
	defaultDisplayStyle     = "list"
	defaultDisplayColor     = "auto"
	defaultPlaceholder      = "?"
	defaultExportPath       = "~/.local/share/seratail/nowplaying.txt"
	defaultExportFormat     = "{artist} - {title}"
	defaultHistoryPath      = "~/.local/share/seratail/history.db"
	defaultOverlayBind      = "127.0.0.1:7488"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SeratoDir:        defaultSeratoDir,
			SessionsSubdir:   defaultSessionsSubdir,
			SessionExtension: defaultSessionExtension,
			LogDir:           defaultLogDir,
		},
		Display: Display{
			Count:        defaultDisplayCount,
			PollInterval: defaultPollInterval,
			Style:        defaultDisplayStyle,
			Color:        defaultDisplayColor,
			ClearScreen:  true,
		},
		Parser: Parser{
			Sanitize:    true,
			Placeholder: defaultPlaceholder,
		},
		Export: Export{
			Path:   defaultExportPath,
			Format: defaultExportFormat,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Overlay: Overlay{
			Bind: defaultOverlayBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
