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
	"fmt"

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/database/models"
)

// ReputationUpdate is one entry in an oracle batch
type ReputationUpdate struct {
	Account string
	Weight  uint32
}

// UpdateReputation applies a batch of oracle-computed reputation weights.
// Only the designated oracle account may call it, and each batch carries a
// round number that must be strictly greater than the last applied round, so
// a delayed or replayed batch can never clobber newer weights. The whole
// batch applies atomically.
func (e *Engine) UpdateReputation(
	caller string,
	updates []ReputationUpdate,
	round uint64,
) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if len(updates) == 0 {
		return fmt.Errorf("%w: empty update batch", ErrInvalidInput)
	}
	if len(updates) > MaxOracleBatch {
		return fmt.Errorf(
			"%w: batch too large (max %d)",
			ErrInvalidInput,
			MaxOracleBatch,
		)
	}
	for _, update := range updates {
		if update.Account == "" {
			return fmt.Errorf("%w: empty account in batch", ErrInvalidInput)
		}
		if update.Weight < 1 || update.Weight > MaxOracleWeight {
			return fmt.Errorf(
				"%w: weight for %s must be 1-%d",
				ErrInvalidInput,
				update.Account,
				MaxOracleWeight,
			)
		}
	}

	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		globals, err := e.loadGlobals(txn)
		if err != nil {
			return err
		}
		if caller != globals.OracleAccount {
			return fmt.Errorf("%w: caller is not the oracle", ErrUnauthorized)
		}
		if round <= globals.Round {
			return fmt.Errorf(
				"%w: round %d not greater than current round %d",
				ErrInvalidInput,
				round,
				globals.Round,
			)
		}
		now := e.now()
		for _, update := range updates {
			reputation, err := e.db.GetReputation(update.Account, txn)
			if err != nil {
				return err
			}
			if reputation == nil {
				reputation = &models.Reputation{Account: update.Account}
			}
			reputation.Weight = update.Weight
			reputation.Round = round
			reputation.UpdatedAt = now
			if err := e.db.SetReputation(reputation, txn); err != nil {
				return err
			}
		}
		// Record the round only after the whole batch has applied
		globals.Round = round
		return e.db.SetGlobals(globals, txn)
	})
	if err != nil {
		return err
	}
	e.publish(ReputationEventType, ReputationEvent{
		Round:   round,
		Updated: len(updates),
	})
	e.logger.Debug(
		"reputation batch applied",
		"round", round,
		"accounts", len(updates),
	)
	return nil
}
