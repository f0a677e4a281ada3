package payment

// Config is the configuration for the payment application.
type Config struct {
	HTTPAddr string
	// MaxFutureYears bounds the accepted card expiry horizon; 0 means the
	// standard 30 years.
	MaxFutureYears int
	// TestCardPrefix enables the test-card expiry override for numbers with
	// this prefix. Empty disables the plugin.
	TestCardPrefix string
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: "localhost:9090",
	}
}
