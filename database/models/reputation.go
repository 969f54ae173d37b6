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

// Reputation holds an account's oracle-supplied influence weight. Updated
// only in batches by the designated oracle, gated by a strictly increasing
// round number.
type Reputation struct {
	ID        uint   `gorm:"primarykey"`
	Account   string `gorm:"uniqueIndex;size:64;not null"`
	Weight    uint32 `gorm:"not null"`
	Round     uint64 `gorm:"not null"` // oracle round that produced this value
	UpdatedAt uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Reputation) TableName() string {
	return "reputation"
}
