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

// Default governance parameter values, applied at initialization
const (
	DefaultApprovalThresholdBp = 9000
	DefaultMaxVoteWeight       = 100
	DefaultAttestorThreshold   = 50

	DefaultVoteWindowRelease = 604800 // 7 days
	DefaultVoteWindowMint    = 259200 // 3 days
	DefaultVoteWindowResolve = 172800 // 2 days
	DefaultVoteWindowClaim   = 259200 // 3 days
	DefaultVoteWindowMerge   = 432000 // 5 days
	DefaultVoteWindowDefault = 86400  // 1 day

	DefaultMultiplierRelease   = 100000000
	DefaultMultiplierMint      = 100000
	DefaultMultiplierResolve   = 5000
	DefaultMultiplierAddClaim  = 1000000
	DefaultMultiplierEditClaim = 1000
	DefaultMultiplierMerge     = 20000

	DefaultApprovedAuthorBp  = 5000
	DefaultApprovedVotersBp  = 5000
	DefaultApprovedStakersBp = 0
	DefaultRejectedVotersBp  = 5000
	DefaultRejectedStakersBp = 5000
)

// Globals is the registry's singleton state row: the emission counter and
// fractional carry, oracle round tracking, and all governance parameters.
// Exactly one row exists once the registry is initialized.
type Globals struct {
	ID uint `gorm:"primarykey"`

	// Emission state
	X     uint64 `gorm:"not null"`         // emission counter, starts at 1
	Carry string `gorm:"size:96;not null"` // fractional carry, decimal string

	// Oracle state
	Round         uint64 `gorm:"not null"`
	OracleAccount string `gorm:"size:64;not null"`

	// External token ledger reference
	TokenRef string `gorm:"size:64;not null"`

	// Emergency controls
	Paused bool `gorm:"not null"`

	// Governance parameters
	ApprovalThresholdBp uint64 `gorm:"not null"` // basis points
	MaxVoteWeight       uint32 `gorm:"not null"`
	AttestorThreshold   uint32 `gorm:"not null"`

	// Voting windows per event type, in seconds
	VoteWindowRelease uint32 `gorm:"not null"`
	VoteWindowMint    uint32 `gorm:"not null"`
	VoteWindowResolve uint32 `gorm:"not null"`
	VoteWindowClaim   uint32 `gorm:"not null"`
	VoteWindowMerge   uint32 `gorm:"not null"`
	VoteWindowDefault uint32 `gorm:"not null"`

	// Emission multipliers per event type
	MultiplierRelease   uint64 `gorm:"not null"`
	MultiplierMint      uint64 `gorm:"not null"`
	MultiplierResolve   uint64 `gorm:"not null"`
	MultiplierAddClaim  uint64 `gorm:"not null"`
	MultiplierEditClaim uint64 `gorm:"not null"`
	MultiplierMerge     uint64 `gorm:"not null"`

	// Distribution ratios in basis points; each outcome group sums to 10000
	ApprovedAuthorBp  uint64 `gorm:"not null"`
	ApprovedVotersBp  uint64 `gorm:"not null"`
	ApprovedStakersBp uint64 `gorm:"not null"`
	RejectedVotersBp  uint64 `gorm:"not null"`
	RejectedStakersBp uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Globals) TableName() string {
	return "globals"
}
