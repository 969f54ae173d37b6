// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "polaris.config"

const DefaultShutdownTimeout = "30s"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	DatabasePath    string `yaml:"databasePath"                                     split_words:"true"`
	BindAddr        string `yaml:"bindAddr"                                         split_words:"true"`
	AdminAccount    string `yaml:"adminAccount"    envconfig:"POLARIS_ADMIN_ACCOUNT"`
	CouncilAccount  string `yaml:"councilAccount"  envconfig:"POLARIS_COUNCIL_ACCOUNT"`
	EscrowAccount   string `yaml:"escrowAccount"   envconfig:"POLARIS_ESCROW_ACCOUNT"`
	OracleAccount   string `yaml:"oracleAccount"   envconfig:"POLARIS_ORACLE_ACCOUNT"`
	TokenRef        string `yaml:"tokenRef"        envconfig:"POLARIS_TOKEN_REF"`
	ShutdownTimeout string `yaml:"shutdownTimeout"                                  split_words:"true"`
	MetricsPort     uint   `yaml:"metricsPort"                                      split_words:"true"`
	AllowReset      bool   `yaml:"allowReset"      envconfig:"POLARIS_ALLOW_RESET"`
}

var globalConfig = &Config{
	DatabasePath:    ".polaris",
	BindAddr:        "0.0.0.0",
	AdminAccount:    "",
	CouncilAccount:  "",
	EscrowAccount:   "",
	OracleAccount:   "",
	TokenRef:        "",
	MetricsPort:     12798,
	ShutdownTimeout: DefaultShutdownTimeout,
	AllowReset:      false,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.polaris/polaris.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".polaris", "polaris.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/polaris/polaris.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/polaris/polaris.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Process environment variables
	err := envconfig.Process("polaris", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
