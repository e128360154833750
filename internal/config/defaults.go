package config

const (
	defaultSourceDir  = "~/data/sourcedata"
	defaultDatasetDir = "~/data/bids"
	defaultLogDir     = "~/.local/share/bidsify/logs"
	defaultTaskName   = "Unnamed"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			DatasetDir: defaultDatasetDir,
			LogDir:     defaultLogDir,
		},
		Dataset: Dataset{
			TaskName:          defaultTaskName,
			OverwriteExisting: true,
		},
		Discovery: Discovery{
			EEGPatterns:        []string{"eeg*"},
			BehavioralPatterns: []string{"bhv*"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
