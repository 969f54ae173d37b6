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
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/engine"
	"github.com/blinklabs-io/polaris/event"
)

// Node bundles the registry engine with its database and event bus
type Node struct {
	eventBus     *event.EventBus
	db           *database.Database
	engine       *engine.Engine
	config       Config
	done         chan struct{}
	shutdownOnce sync.Once
}

func New(cfg Config) (*Node, error) {
	n := &Node{
		config:   cfg,
		eventBus: event.NewEventBus(cfg.promRegistry, cfg.logger),
		done:     make(chan struct{}),
	}
	return n, nil
}

// Run opens the database, builds the engine, and blocks until the context is
// canceled or Stop is called. A fresh registry is initialized automatically
// when oracle and token reference are configured.
func (n *Node) Run(ctx context.Context) error {
	db, err := database.New(
		n.config.logger,
		n.config.dataDir,
		n.config.promRegistry,
	)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	n.db = db
	e, err := engine.NewEngine(engine.EngineConfig{
		Logger:         n.config.logger,
		EventBus:       n.eventBus,
		Database:       n.db,
		PromRegistry:   n.config.promRegistry,
		Tokens:         n.config.tokens,
		AdminAccount:   n.config.adminAccount,
		CouncilAccount: n.config.councilAccount,
		EscrowAccount:  n.config.escrowAccount,
		AllowReset:     n.config.allowReset,
	})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	n.engine = e

	// Initialize a fresh registry when bootstrap accounts are configured
	if n.config.oracleAccount != "" && n.config.tokenRef != "" {
		globals, err := n.engine.Globals()
		if err != nil && !errors.Is(err, engine.ErrNotInitialized) {
			return err
		}
		if globals == nil {
			if err := n.engine.Initialize(
				n.config.oracleAccount,
				n.config.tokenRef,
			); err != nil {
				return fmt.Errorf("failed to initialize registry: %w", err)
			}
		}
	}

	// Wait for shutdown
	select {
	case <-ctx.Done():
	case <-n.done:
	}
	return nil
}

// Engine returns the registry engine. It is nil until Run has started.
func (n *Node) Engine() *engine.Engine {
	return n.engine
}

// EventBus returns the node's event bus
func (n *Node) EventBus() *event.EventBus {
	return n.eventBus
}

// Database returns the underlying database. It is nil until Run has started.
func (n *Node) Database() *database.Database {
	return n.db
}

func (n *Node) Stop() error {
	var err error
	n.shutdownOnce.Do(func() {
		err = n.shutdown()
	})
	return err
}

func (n *Node) shutdown() error {
	var err error
	n.config.logger.Debug("starting graceful shutdown")
	if n.eventBus != nil {
		n.eventBus.Stop()
	}
	if n.db != nil {
		if closeErr := n.db.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("database close: %w", closeErr),
			)
		}
	}
	n.config.logger.Debug("graceful shutdown complete")
	close(n.done)
	return err
}
