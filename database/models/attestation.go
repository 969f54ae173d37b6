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

// Attestation is a trusted confirmation of a high-value submission. Records
// are append-only; finalization only checks existence-for-hash.
type Attestation struct {
	ID         uint64 `gorm:"primarykey"`
	AnchorHash []byte `gorm:"index;size:32;not null"`
	Attestor   string `gorm:"size:64;not null"`
	Type       uint8  `gorm:"not null"` // event type confirmed
	CreatedAt  uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Attestation) TableName() string {
	return "attestation"
}
