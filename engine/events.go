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

package engine

import (
	"github.com/blinklabs-io/polaris/event"
)

// Event types published on the event bus. Events are published only after
// the state change that produced them has been committed.
const (
	AnchorEventType      event.EventType = "registry.anchor"
	VoteEventType        event.EventType = "registry.vote"
	AttestationEventType event.EventType = "registry.attestation"
	FinalizeEventType    event.EventType = "registry.finalize"
	StakeEventType       event.EventType = "registry.stake"
	RewardClaimEventType event.EventType = "registry.reward_claim"
	ReputationEventType  event.EventType = "registry.reputation"
	LikeEventType        event.EventType = "registry.like"
)

// AnchorEvent is published when a submission is anchored
type AnchorEvent struct {
	Author      string
	Hash        []byte
	AnchorID    uint64
	SubmissionX uint64
	Escrowed    uint64
	Type        uint8
}

// VoteEvent is published when a vote is cast or changed
type VoteEvent struct {
	Voter  string
	Hash   []byte
	Weight uint32
	Value  int8
}

// AttestationEvent is published when an attestation is recorded
type AttestationEvent struct {
	Attestor string
	Hash     []byte
	Type     uint8
}

// FinalizeEvent is published when an anchor is finalized, with the outcome
// and payout summary
type FinalizeEvent struct {
	Hash         []byte
	UpVotes      uint64
	DownVotes    uint64
	Escrowed     uint64
	AuthorShare  uint64
	VotersShare  uint64
	StakersShare uint64
	Accepted     bool
}

// StakeEvent is published on stake and unstake
type StakeEvent struct {
	Account string
	NodeID  []byte
	Amount  uint64
	Unstake bool
}

// RewardClaimEvent is published when pending rewards are claimed
type RewardClaimEvent struct {
	Account   string
	Amount    uint64
	NodeCount uint32
}

// ReputationEvent is published after an oracle reputation batch is applied
type ReputationEvent struct {
	Round   uint64
	Updated int
}

// LikeEvent is published on like and unlike
type LikeEvent struct {
	Account string
	NodeID  []byte
	Unlike  bool
}
