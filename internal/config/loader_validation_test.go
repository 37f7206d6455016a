package config

import (
	"errors"
	"os"
	"testing"

	"github.com/khirotaka/toolfault/pkg/toolerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := t.TempDir() + "/config.yaml"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}
	return tmpFile
}

func TestLoadConfig_HealthCheckInterval(t *testing.T) {
	tests := []struct {
		name             string
		yamlContent      string
		expectError      bool
		expectedInterval int
	}{
		{
			name: "Valid interval in YAML",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true
healthCheckInterval: 10000`,
			expectError:      false,
			expectedInterval: 10000,
		},
		{
			name: "Boundary value - minimum (5000ms)",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true
healthCheckInterval: 5000`,
			expectError:      false,
			expectedInterval: 5000,
		},
		{
			name: "Boundary value - maximum (300000ms)",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true
healthCheckInterval: 300000`,
			expectError:      false,
			expectedInterval: 300000,
		},
		{
			name: "Interval too small in YAML",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true
healthCheckInterval: 4999`,
			expectError: true,
		},
		{
			name: "Interval too large in YAML",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true
healthCheckInterval: 300001`,
			expectError: true,
		},
		{
			name: "Omitted interval falls back to default",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true`,
			expectError:      false,
			expectedInterval: DefaultHealthCheckInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := writeConfig(t, tt.yamlContent)

			config, err := LoadConfig(tmpFile)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if config.HealthCheckInterval != tt.expectedInterval {
				t.Fatalf("expected interval %d, got %d", tt.expectedInterval, config.HealthCheckInterval)
			}
		})
	}
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
	}{
		{
			name:        "no servers",
			yamlContent: `servers: []`,
		},
		{
			name: "server without command",
			yamlContent: `
servers:
  - name: test-server`,
		},
		{
			name: "server name with invalid characters",
			yamlContent: `
servers:
  - name: "bad name!"
    command: /bin/true`,
		},
		{
			name: "api key too short",
			yamlContent: `
auth:
  keys:
    - key: short
      name: ci
servers:
  - name: test-server
    command: /bin/true`,
		},
		{
			name: "api key without name",
			yamlContent: `
auth:
  keys:
    - key: gateway-key-0123456789
servers:
  - name: test-server
    command: /bin/true`,
		},
		{
			name: "negative rate limit",
			yamlContent: `
rateLimit:
  rps: -1
servers:
  - name: test-server
    command: /bin/true`,
		},
		{
			name: "timeout above maximum",
			yamlContent: `
servers:
  - name: test-server
    command: /bin/true
    timeout: 300001`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := writeConfig(t, tt.yamlContent)

			_, err := LoadConfig(tmpFile)
			if err == nil {
				t.Fatal("expected validation error")
			}

			// 失敗は必ず CONFIGURATION_ERROR として報告される
			var structured *toolerr.Error
			if !errors.As(err, &structured) {
				t.Fatalf("expected *toolerr.Error, got %T", err)
			}
			if structured.Code() != toolerr.ErrCodeConfiguration {
				t.Fatalf("expected CONFIGURATION_ERROR, got %s", structured.Code())
			}
		})
	}
}

func TestLoadConfig_ValidationDetailsNameFields(t *testing.T) {
	tmpFile := writeConfig(t, `
servers:
  - name: test-server
    command: /bin/true
healthCheckInterval: 100`)

	_, err := LoadConfig(tmpFile)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var structured *toolerr.Error
	if !errors.As(err, &structured) {
		t.Fatalf("expected *toolerr.Error, got %T", err)
	}

	fields, ok := structured.Details()["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected fields map in details, got %v", structured.Details())
	}
	if _, ok := fields["Config.HealthCheckInterval"]; !ok {
		t.Fatalf("expected Config.HealthCheckInterval in fields, got %v", fields)
	}
}
