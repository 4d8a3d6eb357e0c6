package config

type Config struct {
	Network   string `yaml:"network,omitempty"`
	Benchmark string `yaml:"benchmark,omitempty"`
	Threads   int    `yaml:"threads,omitempty"`
}

func DefaultConfig() *Config {
	// Threads zero means serial execution.
	return &Config{
		Network:   "benchnet",
		Benchmark: "sleep",
	}
}
