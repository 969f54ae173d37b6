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

package blob

import (
	"fmt"
	"log/slog"

	badgerplugin "github.com/blinklabs-io/polaris/database/plugin/blob/badger"
	"github.com/blinklabs-io/polaris/database/types"
	"github.com/prometheus/client_golang/prometheus"
)

// BlobStore is the interface for archived event body storage. Bodies are
// content addressed and written at most once, inside the same commit scope
// as the metadata that references them.
type BlobStore interface {
	Close() error
	NewTransaction(bool) types.Txn
	Get(types.Txn, []byte) ([]byte, error)
	Set(types.Txn, []byte, []byte) error
	Delete(types.Txn, []byte) error
	Wipe(types.Txn) error
}

// New creates a new blob store using the requested plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (BlobStore, error) {
	switch pluginName {
	case "badger":
		return badgerplugin.New(
			badgerplugin.WithDataDir(dataDir),
			badgerplugin.WithLogger(logger),
			badgerplugin.WithPromRegistry(promRegistry),
		)
	default:
		return nil, fmt.Errorf("unknown blob plugin: %s", pluginName)
	}
}
