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

import (
	"strings"
)

// Anchor represents an on-record reference to an off-chain content submission.
// Only the SHA-256 hash of the event body is recorded here; the body itself
// lives in off-chain storage (optionally archived in the local blob store).
type Anchor struct {
	ID             uint64 `gorm:"primarykey"`
	Author         string `gorm:"index;size:64;not null"`
	Type           uint8  `gorm:"not null"`
	Hash           []byte `gorm:"uniqueIndex;size:32;not null"`
	Parent         []byte `gorm:"size:32"` // nil when not threaded
	OriginTime     uint64 `gorm:"not null"`
	Tags           string `gorm:"size:256"` // comma-separated tag labels
	ExpiresAt      uint64 `gorm:"not null"`
	Finalized      bool   `gorm:"not null"`
	EscrowedAmount uint64 `gorm:"not null"`
	SubmissionX    uint64 `gorm:"not null"` // emission counter captured at submission
}

// TableName returns the table name
func (Anchor) TableName() string {
	return "anchor"
}

// SetTags stores the tag labels as a comma-separated string
func (a *Anchor) SetTags(tags []string) {
	a.Tags = strings.Join(tags, ",")
}

// TagList returns the tag labels
func (a *Anchor) TagList() []string {
	if a.Tags == "" {
		return nil
	}
	return strings.Split(a.Tags, ",")
}
