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

// Vote value constants
const (
	VoteReject  = -1
	VoteNeutral = 0
	VoteApprove = 1
)

// Vote represents a reputation-weighted vote on an anchored submission.
// At most one live vote exists per (voter, anchor hash) pair; re-voting
// overwrites value, weight and timestamp in place.
type Vote struct {
	ID         uint64 `gorm:"primarykey"`
	AnchorHash []byte `gorm:"index:idx_vote_hash;uniqueIndex:uniq_voter_hash,priority:2;size:32;not null"`
	Voter      string `gorm:"uniqueIndex:uniq_voter_hash,priority:1;size:64;not null"`
	Value      int8   `gorm:"not null"` // -1, 0, +1
	Weight     uint32 `gorm:"not null"` // capped reputation at cast time
	CastAt     uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Vote) TableName() string {
	return "vote"
}
