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
	"errors"

	"github.com/blinklabs-io/polaris/database/models"
	"gorm.io/gorm"
)

// GetGlobals returns the globals singleton, or nil when the registry has not
// been initialized
func (d *MetadataStoreSqlite) GetGlobals(
	txn *gorm.DB,
) (*models.Globals, error) {
	ret := &models.Globals{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetGlobals saves the globals singleton
func (d *MetadataStoreSqlite) SetGlobals(
	globals *models.Globals,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(globals); result.Error != nil {
		return result.Error
	}
	return nil
}

// Wipe deletes all registry state, including the globals singleton. Used only
// by the safety-gated reset operation.
func (d *MetadataStoreSqlite) Wipe(txn *gorm.DB) error {
	if txn == nil {
		txn = d.DB()
	}
	for _, model := range models.MigrateModels {
		if result := txn.Where("1 = 1").Delete(model); result.Error != nil {
			return result.Error
		}
	}
	return nil
}
