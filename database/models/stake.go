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

package models

// Stake records the tokens an account has staked on a graph node.
type Stake struct {
	ID          uint   `gorm:"primarykey"`
	Account     string `gorm:"uniqueIndex:uniq_stake_acct_node,priority:1;size:64;not null"`
	NodeID      []byte `gorm:"uniqueIndex:uniq_stake_acct_node,priority:2;size:32;not null"`
	Amount      uint64 `gorm:"not null"`
	StakedAt    uint64 `gorm:"not null"` // first staked
	LastUpdated uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Stake) TableName() string {
	return "stake"
}

// NodeAggregate tracks the total staked amount and distinct staker count for
// a node. Total must equal the sum of all stake amounts on the node; the row
// is removed once the staker count reaches zero.
type NodeAggregate struct {
	ID          uint   `gorm:"primarykey"`
	NodeID      []byte `gorm:"uniqueIndex;size:32;not null"`
	Total       uint64 `gorm:"not null"`
	StakerCount uint32 `gorm:"not null"`
}

// TableName returns the table name
func (NodeAggregate) TableName() string {
	return "node_aggregate"
}

// StakerIndex mirrors Stake keyed for per-node enumeration, so reward
// distribution can walk all stakers of a node in deterministic order. The
// cached amount must stay numerically consistent with the stake record.
type StakerIndex struct {
	ID      uint64 `gorm:"primarykey"`
	Account string `gorm:"uniqueIndex:uniq_staker_acct_node,priority:1;size:64;not null"`
	NodeID  []byte `gorm:"index:idx_staker_node;uniqueIndex:uniq_staker_acct_node,priority:2;size:32;not null"`
	Amount  uint64 `gorm:"not null"`
}

// TableName returns the table name
func (StakerIndex) TableName() string {
	return "staker_index"
}
