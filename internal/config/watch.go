package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// WatchLogLevel watches the loaded config file and calls onChange with the
// logging level after every write that still validates. Other keys are not
// re-applied at runtime; the backend endpoint in particular is fixed for the
// life of the process.
//
// It is a no-op when no config file was read.
func WatchLogLevel(onChange func(level string), onError func(error)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		handleConfigChange(e, onChange, onError)
	})
	viper.WatchConfig()
}

func handleConfigChange(e fsnotify.Event, onChange func(level string), onError func(error)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	cfg, err := Load()
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	onChange(cfg.Logging.Level)
}
