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

// PendingReward is a credited-but-unclaimed staker reward balance. Rewards
// from rejected submissions accumulate here and are paid out on demand via
// claim, which deletes the record.
type PendingReward struct {
	ID          uint   `gorm:"primarykey"`
	Account     string `gorm:"index:idx_pending_acct;uniqueIndex:uniq_pending_acct_node,priority:1;size:64;not null"`
	NodeID      []byte `gorm:"uniqueIndex:uniq_pending_acct_node,priority:2;size:32;not null"`
	Amount      uint64 `gorm:"not null"`
	EarnedAt    uint64 `gorm:"not null"`
	LastUpdated uint64 `gorm:"not null"`
}

// TableName returns the table name
func (PendingReward) TableName() string {
	return "pending_reward"
}
