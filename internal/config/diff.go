package config

// ConfigDiff describes what changed between two configs. Fields that can be
// safely hot-reloaded are broken out individually; everything else is
// summarised in RequiresRestart.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	AmbientChanged bool
	NewAmbient     AmbientConfig

	EnrichmentChanged bool
	NewEnrichment     EnrichmentConfig

	// RequiresRestart lists config sections whose changes cannot be
	// applied to a running daemon.
	RequiresRestart []string
}

// Changed reports whether the diff contains any hot-reloadable change.
func (d ConfigDiff) Changed() bool {
	return d.LogLevelChanged || d.AmbientChanged || d.EnrichmentChanged
}

// Diff compares old and new configs and returns what changed. The watch
// daemon applies the reloadable fields live and warns about the rest.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Logging.Level != new.Logging.Level {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Logging.Level
	}
	if old.Ambient != new.Ambient {
		d.AmbientChanged = true
		d.NewAmbient = new.Ambient
	}
	if old.Enrichment != new.Enrichment {
		d.EnrichmentChanged = true
		d.NewEnrichment = new.Enrichment
	}

	if old.Transcription != new.Transcription {
		d.RequiresRestart = append(d.RequiresRestart, "transcription")
	}
	if old.Vault != new.Vault {
		d.RequiresRestart = append(d.RequiresRestart, "vault")
	}
	if old.Audio != new.Audio {
		d.RequiresRestart = append(d.RequiresRestart, "audio")
	}
	if old.Privacy != new.Privacy {
		d.RequiresRestart = append(d.RequiresRestart, "privacy")
	}
	if old.Watch != new.Watch {
		d.RequiresRestart = append(d.RequiresRestart, "watch")
	}
	if old.Logging.Format != new.Logging.Format || old.Logging.File != new.Logging.File {
		d.RequiresRestart = append(d.RequiresRestart, "logging")
	}

	return d
}
