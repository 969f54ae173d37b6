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

package polaris

import (
	"io"
	"log/slog"
	"time"

	"github.com/blinklabs-io/polaris/engine"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	logger          *slog.Logger
	promRegistry    prometheus.Registerer
	tokens          engine.TokenLedger
	dataDir         string
	adminAccount    string
	councilAccount  string
	escrowAccount   string
	oracleAccount   string
	tokenRef        string
	shutdownTimeout time.Duration
	allowReset      bool
}

// ConfigOptionFunc is a type that represents functions that modify the node config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new polaris config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDatabasePath specifies the persistent data directory to use. The default is to store everything in memory
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add metrics to. In most cases, prometheus.DefaultRegistry would be
// a good choice to get metrics working
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithTokenLedger specifies the external token ledger backend. The default is
// an in-process ledger suitable for development and testing
func WithTokenLedger(tokens engine.TokenLedger) ConfigOptionFunc {
	return func(c *Config) {
		c.tokens = tokens
	}
}

// WithAdminAccount specifies the account allowed to perform governance operations
func WithAdminAccount(account string) ConfigOptionFunc {
	return func(c *Config) {
		c.adminAccount = account
	}
}

// WithCouncilAccount specifies the council account used for attestations
func WithCouncilAccount(account string) ConfigOptionFunc {
	return func(c *Config) {
		c.councilAccount = account
	}
}

// WithEscrowAccount specifies the account holding escrowed and staked tokens
func WithEscrowAccount(account string) ConfigOptionFunc {
	return func(c *Config) {
		c.escrowAccount = account
	}
}

// WithOracleAccount specifies the oracle account used when initializing a
// fresh registry
func WithOracleAccount(account string) ConfigOptionFunc {
	return func(c *Config) {
		c.oracleAccount = account
	}
}

// WithTokenRef specifies the external token ledger reference recorded when
// initializing a fresh registry
func WithTokenRef(tokenRef string) ConfigOptionFunc {
	return func(c *Config) {
		c.tokenRef = tokenRef
	}
}

// WithAllowReset enables the admin reset operation. This is disabled by default
func WithAllowReset(allowReset bool) ConfigOptionFunc {
	return func(c *Config) {
		c.allowReset = allowReset
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown. The default is 30 seconds
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}
