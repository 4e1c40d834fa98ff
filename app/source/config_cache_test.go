package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://lists.example.com/announce/feed.xml"

settings:
  enabled: true
  refresh_interval: 1800
  max_messages: 50
  timeout: 15
`

	err := os.WriteFile(filepath.Join(tempDir, "announce.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 config, got %d", configCache.GetConfigCount())
	}

	config, err := configCache.GetConfig("announce")
	if err != nil {
		t.Fatal(err)
	}

	if config.Name != "announce" {
		t.Errorf("Expected name 'announce', got '%s'", config.Name)
	}
	if config.URL != "https://lists.example.com/announce/feed.xml" {
		t.Errorf("Expected configured URL, got '%s'", config.URL)
	}
	if config.Settings.RefreshInterval != 1800 {
		t.Errorf("Expected refresh interval 1800, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.MaxMessages != 50 {
		t.Errorf("Expected max messages 50, got %d", config.Settings.MaxMessages)
	}
}

func TestConfigCacheDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://lists.example.com/dev/feed.xml"

settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "dev.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	config, err := configCache.GetConfig("dev")
	if err != nil {
		t.Fatal(err)
	}

	if config.Settings.RefreshInterval != 3600 {
		t.Errorf("Expected default refresh interval 3600, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.MaxMessages != 200 {
		t.Errorf("Expected default max messages 200, got %d", config.Settings.MaxMessages)
	}
	if config.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", config.Settings.Timeout)
	}
}

func TestConfigCacheInvalidConfig(t *testing.T) {
	tempDir := t.TempDir()

	// Missing the source URL.
	content := `
settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "broken.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err == nil {
		t.Error("Expected error for config without URL")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache("/nonexistent/sources")
	if err := configCache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got: %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}

func TestConfigCacheEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	configs := []struct {
		filename string
		content  string
	}{
		{
			"active.yml",
			`
url: "https://lists.example.com/active/feed.xml"
settings:
  enabled: true
`,
		},
		{
			"paused.yml",
			`
url: "https://lists.example.com/paused/feed.xml"
settings:
  enabled: false
`,
		},
	}

	for _, config := range configs {
		err := os.WriteFile(filepath.Join(tempDir, config.filename), []byte(config.content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	configCache := NewConfigCache(tempDir)
	err := configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	enabled := configCache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["active"]; !ok {
		t.Error("Expected 'active' to be in enabled configs")
	}

	all := configCache.GetConfigs()
	if len(all) != 2 {
		t.Errorf("Expected 2 configs total, got %d", len(all))
	}

	// The returned map is a copy.
	delete(all, "active")
	if configCache.GetConfigCount() != 2 {
		t.Error("Modifying returned configs map affected the cache")
	}
}

func TestConfigCacheGetConfigNotFound(t *testing.T) {
	configCache := NewConfigCache(t.TempDir())
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	_, err := configCache.GetConfig("missing")
	if err == nil {
		t.Error("Expected error for unknown source name")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected error message to contain 'not found', got: %v", err)
	}
}
