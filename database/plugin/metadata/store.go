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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/polaris/database/models"
	"github.com/blinklabs-io/polaris/database/plugin/metadata/sqlite"
	"gorm.io/gorm"
)

// MetadataStore is the interface for the registry's relational state: the
// globals singleton and the anchor, vote, reputation, attestation, staking,
// pending-reward and like ledgers.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB

	// Globals
	GetGlobals(*gorm.DB) (*models.Globals, error)
	SetGlobals(*models.Globals, *gorm.DB) error

	// Anchors
	AddAnchor(*models.Anchor, *gorm.DB) error
	GetAnchorByHash([]byte, *gorm.DB) (*models.Anchor, error)
	FinalizeAnchor(uint64, *gorm.DB) error
	CountAnchors(*gorm.DB) (int64, error)

	// Votes
	GetVote(
		string, // voter
		[]byte, // anchor hash
		*gorm.DB,
	) (*models.Vote, error)
	SetVote(*models.Vote, *gorm.DB) error
	GetVotesByAnchor([]byte, *gorm.DB) ([]models.Vote, error)

	// Reputation
	GetReputation(string, *gorm.DB) (*models.Reputation, error)
	SetReputation(*models.Reputation, *gorm.DB) error

	// Attestations
	AddAttestation(*models.Attestation, *gorm.DB) error
	HasAttestation([]byte, *gorm.DB) (bool, error)

	// Stakes
	GetStake(
		string, // account
		[]byte, // node
		*gorm.DB,
	) (*models.Stake, error)
	SetStake(*models.Stake, *gorm.DB) error
	DeleteStake(*models.Stake, *gorm.DB) error
	GetNodeAggregate([]byte, *gorm.DB) (*models.NodeAggregate, error)
	SetNodeAggregate(*models.NodeAggregate, *gorm.DB) error
	DeleteNodeAggregate(*models.NodeAggregate, *gorm.DB) error
	GetNodeAggregates(*gorm.DB) ([]models.NodeAggregate, error)
	GetStakerIndex(
		string, // account
		[]byte, // node
		*gorm.DB,
	) (*models.StakerIndex, error)
	SetStakerIndex(*models.StakerIndex, *gorm.DB) error
	DeleteStakerIndex(*models.StakerIndex, *gorm.DB) error
	GetStakersByNode([]byte, *gorm.DB) ([]models.StakerIndex, error)

	// Pending rewards
	GetPendingReward(
		string, // account
		[]byte, // node
		*gorm.DB,
	) (*models.PendingReward, error)
	SetPendingReward(*models.PendingReward, *gorm.DB) error
	DeletePendingReward(*models.PendingReward, *gorm.DB) error
	GetPendingRewardsByAccount(string, *gorm.DB) ([]models.PendingReward, error)

	// Likes
	GetLike(
		string, // account
		[]byte, // node
		*gorm.DB,
	) (*models.Like, error)
	SetLike(*models.Like, *gorm.DB) error
	DeleteLike(*models.Like, *gorm.DB) error
	GetLikeAggregate([]byte, *gorm.DB) (*models.LikeAggregate, error)
	SetLikeAggregate(*models.LikeAggregate, *gorm.DB) error
	DeleteLikeAggregate(*models.LikeAggregate, *gorm.DB) error

	// Helpers
	Wipe(*gorm.DB) error
}

// New creates a new metadata store using the requested plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
) (MetadataStore, error) {
	switch pluginName {
	case "sqlite":
		return sqlite.New(dataDir, logger)
	default:
		return nil, fmt.Errorf("unknown metadata plugin: %s", pluginName)
	}
}
