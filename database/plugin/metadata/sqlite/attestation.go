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

package sqlite

import (
	"github.com/blinklabs-io/polaris/database/models"
	"gorm.io/gorm"
)

// AddAttestation inserts a new attestation record. Attestations are
// append-only and never deduplicated.
func (d *MetadataStoreSqlite) AddAttestation(
	attestation *models.Attestation,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Create(attestation); result.Error != nil {
		return result.Error
	}
	return nil
}

// HasAttestation returns whether any attestation exists for an anchor hash
func (d *MetadataStoreSqlite) HasAttestation(
	anchorHash []byte,
	txn *gorm.DB,
) (bool, error) {
	if txn == nil {
		txn = d.DB()
	}
	var count int64
	result := txn.Model(&models.Attestation{}).
		Where("anchor_hash = ?", anchorHash).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
