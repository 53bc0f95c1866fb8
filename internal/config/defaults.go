package config

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    DefaultHome(),
		Sharing: SharingConfig{
			Extendable:        true,
			IterationExponent: 1,
			GroupThreshold:    1,
			MemberThreshold:   2,
			MemberCount:       3,
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
	}
}
