package structures

// CliFlags holds the command-line options that feed the config provider.
type CliFlags struct {
	ConfigPath string
	// ConfigRequired makes a missing config file an error instead of
	// falling back to defaults. Set when --config is given explicitly.
	ConfigRequired bool
	FilePath       string
	DebugMode      bool
}
