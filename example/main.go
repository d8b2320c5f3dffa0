// FILE: lixenwraith/konf/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/konf"
)

// AppConfig is the struct both declaring the schema and receiving the values.
type AppConfig struct {
	Server struct {
		Host     string        `konf:"host" desc:"listen address"`
		Port     int64         `konf:"port" validate:"gte=1024,lte=65535"`
		LogLevel konf.Symbol   `konf:"log_level"`
		Timeout  time.Duration `konf:"timeout"`
	} `konf:"server"`
	Tags []string `konf:"tags" sep:";"`
}

const configFilePath = "config.yaml"

const configFile = `
development:
  server:
    host: localhost
    log_level: debug
production:
  server:
    host: {{ env "APP_HOST" | default "0.0.0.0" }}
    log_level: warn
    timeout: 1m 30s
  tags: [edge, eu-west]
`

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a config file with a section per deployment environment.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating configuration file...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(configFilePath)
	}()

	if err := os.WriteFile(configFilePath, []byte(configFile), 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", configFilePath, err)
	}

	// =========================================================================
	// PART 2: DECLARE AND BUILD
	// The struct supplies kinds and defaults; env overrides the file.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Building configuration...")

	defaults := &AppConfig{}
	defaults.Server.Host = "127.0.0.1"
	defaults.Server.Port = 8080
	defaults.Server.LogLevel = "info"
	defaults.Server.Timeout = 30 * time.Second

	reg := konf.NewRegistry(konf.WithEnvPrefix("app"), konf.WithIgnoreUnknownEnv(true))
	if err := reg.RegisterStruct("", defaults); err != nil {
		log.Fatalf("❌ Failed to declare schema: %v", err)
	}

	target := &AppConfig{}
	err := konf.NewBuilder(reg).
		WithEnviron(append(os.Environ(), "APP_SERVER_PORT=8888")).
		WithFile(configFilePath, "production").
		WithValidator(func(c *konf.Config) error {
			level, _ := c.Symbol("server.log_level")
			if level == "debug" {
				return errors.New("debug logging is not allowed in production")
			}
			return nil
		}).
		BuildAndScan(target)
	if err != nil {
		log.Fatalf("❌ Build failed: %v", err)
	}

	log.Println("✅ Configuration resolved.")
	fmt.Printf("  host=%s port=%d level=%s timeout=%s tags=%v\n",
		target.Server.Host, target.Server.Port, target.Server.LogLevel, target.Server.Timeout, target.Tags)

	// =========================================================================
	// PART 3: REJECTED VALUES
	// Values are cast and checked before they are stored.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Rejected assignments...")

	cfg, err := konf.New(reg)
	if err != nil {
		log.Fatalf("❌ Failed to create config: %v", err)
	}
	for _, attempt := range []struct {
		name  string
		value any
	}{
		{"server.port", "yolo"},
		{"server.port", 80},
		{"server.timeout", "forever"},
	} {
		if err := cfg.Set(attempt.name, attempt.value); err != nil {
			log.Printf("   rejected: %v", err)
		}
	}
}
