package config

import "testing"

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Network == "" {
		t.Fatal("expected a default network")
	}
	if config.Threads < 0 {
		t.Fatal("negative thread count")
	}
	t.Log(config)
}
