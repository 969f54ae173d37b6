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
	"crypto/sha256"
	"fmt"

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/database/models"
)

// Stake moves tokens from the account into registry custody and records the
// stake across three mirrored structures: the per-account stake, the
// per-node aggregate, and the staker index used for per-node enumeration.
// All three update together or not at all.
//
// The inbound token transfer runs before the store transaction so a failed
// transfer aborts with no state change; a failed transaction refunds the
// transfer.
func (e *Engine) Stake(account string, nodeID []byte, amount uint64) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidInput)
	}
	if len(nodeID) != sha256.Size {
		return fmt.Errorf("%w: node ID must be 32 bytes", ErrInvalidInput)
	}
	if amount == 0 {
		return fmt.Errorf("%w: must stake positive amount", ErrInvalidInput)
	}
	globals, err := e.db.GetGlobals(nil)
	if err != nil {
		return err
	}
	if globals == nil {
		return ErrNotInitialized
	}
	if globals.Paused {
		return ErrPaused
	}

	// Take custody of the tokens up front
	if err := e.tokens.Move(
		account,
		e.escrowAccount,
		amount,
		fmt.Sprintf("stake on node %x", nodeID[:8]),
	); err != nil {
		return err
	}

	now := e.now()
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		stake, err := e.db.GetStake(account, nodeID, txn)
		if err != nil {
			return err
		}
		// Snapshot before mutation; a post-mutation check would be stale
		isNewStaker := stake == nil
		if isNewStaker {
			stake = &models.Stake{
				Account:  account,
				NodeID:   nodeID,
				StakedAt: now,
			}
		}
		stake.Amount += amount
		stake.LastUpdated = now
		if err := e.db.SetStake(stake, txn); err != nil {
			return err
		}

		aggregate, err := e.db.GetNodeAggregate(nodeID, txn)
		if err != nil {
			return err
		}
		if aggregate == nil {
			aggregate = &models.NodeAggregate{NodeID: nodeID}
		}
		aggregate.Total += amount
		if isNewStaker {
			aggregate.StakerCount++
		}
		if err := e.db.SetNodeAggregate(aggregate, txn); err != nil {
			return err
		}

		index, err := e.db.GetStakerIndex(account, nodeID, txn)
		if err != nil {
			return err
		}
		if index == nil {
			index = &models.StakerIndex{
				Account: account,
				NodeID:  nodeID,
			}
		}
		index.Amount += amount
		return e.db.SetStakerIndex(index, txn)
	})
	if err != nil {
		// Refund the custody transfer taken before the transaction
		if refundErr := e.tokens.Move(
			e.escrowAccount,
			account,
			amount,
			"stake refund",
		); refundErr != nil {
			e.logger.Error(
				"stake refund failed",
				"account", account,
				"amount", amount,
				"error", refundErr,
			)
		}
		return err
	}
	e.publish(StakeEventType, StakeEvent{
		Account: account,
		NodeID:  nodeID,
		Amount:  amount,
	})
	return nil
}

// Unstake returns staked tokens to the account. A full withdrawal removes
// the stake record, decrements the staker count, and removes the aggregate
// and index entries once they reach zero; a partial withdrawal leaves all
// three records with reduced amounts.
func (e *Engine) Unstake(account string, nodeID []byte, amount uint64) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidInput)
	}
	if len(nodeID) != sha256.Size {
		return fmt.Errorf("%w: node ID must be 32 bytes", ErrInvalidInput)
	}
	if amount == 0 {
		return fmt.Errorf("%w: must unstake positive amount", ErrInvalidInput)
	}

	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := e.loadGlobals(txn); err != nil {
			return err
		}
		stake, err := e.db.GetStake(account, nodeID, txn)
		if err != nil {
			return err
		}
		if stake == nil {
			return fmt.Errorf("%w: no stake for this node", ErrNotFound)
		}
		if stake.Amount < amount {
			return fmt.Errorf("%w: staked %d, requested %d",
				ErrInsufficientBalance, stake.Amount, amount)
		}
		// Snapshot before mutation
		removingAll := stake.Amount == amount
		if removingAll {
			if err := e.db.DeleteStake(stake, txn); err != nil {
				return err
			}
		} else {
			stake.Amount -= amount
			stake.LastUpdated = e.now()
			if err := e.db.SetStake(stake, txn); err != nil {
				return err
			}
		}

		aggregate, err := e.db.GetNodeAggregate(nodeID, txn)
		if err != nil {
			return err
		}
		if aggregate == nil || aggregate.Total < amount {
			return fmt.Errorf("%w: node aggregate out of sync", ErrCorruptState)
		}
		aggregate.Total -= amount
		if removingAll {
			if aggregate.StakerCount == 0 {
				return fmt.Errorf(
					"%w: staker count already zero",
					ErrCorruptState,
				)
			}
			aggregate.StakerCount--
		}
		if aggregate.StakerCount == 0 {
			if err := e.db.DeleteNodeAggregate(aggregate, txn); err != nil {
				return err
			}
		} else {
			if err := e.db.SetNodeAggregate(aggregate, txn); err != nil {
				return err
			}
		}

		index, err := e.db.GetStakerIndex(account, nodeID, txn)
		if err != nil {
			return err
		}
		if index == nil {
			return fmt.Errorf("%w: staker index missing", ErrCorruptState)
		}
		if removingAll {
			return e.db.DeleteStakerIndex(index, txn)
		}
		index.Amount -= amount
		return e.db.SetStakerIndex(index, txn)
	})
	if err != nil {
		return err
	}
	if err := e.dispatch([]tokenEffect{
		moveEffect(e.escrowAccount, account, amount, "unstake from node"),
	}); err != nil {
		return err
	}
	e.publish(StakeEventType, StakeEvent{
		Account: account,
		NodeID:  nodeID,
		Amount:  amount,
		Unstake: true,
	})
	return nil
}

// distributeToStakers credits each staker's proportional share of a rejected
// submission's staker split to their pending-reward record. Credits are
// never paid directly; stakers claim on demand. This keeps per-finalize work
// bounded by the stakers of staked nodes rather than paying an unbounded
// account set eagerly.
//
// Called only from the finalize rejected path, inside its transaction.
func (e *Engine) distributeToStakers(
	amount uint64,
	txn *database.Txn,
) error {
	if amount == 0 {
		return nil
	}
	aggregates, err := e.db.GetNodeAggregates(txn)
	if err != nil {
		return err
	}
	var totalStaked uint64
	for _, aggregate := range aggregates {
		totalStaked += aggregate.Total
	}
	if totalStaked == 0 {
		// Nothing staked anywhere; the share is not distributed
		return nil
	}
	now := e.now()
	for _, aggregate := range aggregates {
		nodeShare := mulDiv(amount, aggregate.Total, totalStaked)
		if nodeShare == 0 {
			continue
		}
		stakers, err := e.db.GetStakersByNode(aggregate.NodeID, txn)
		if err != nil {
			return err
		}
		for _, staker := range stakers {
			stakerShare := mulDiv(nodeShare, staker.Amount, aggregate.Total)
			if stakerShare == 0 {
				continue
			}
			pending, err := e.db.GetPendingReward(
				staker.Account,
				aggregate.NodeID,
				txn,
			)
			if err != nil {
				return err
			}
			if pending == nil {
				pending = &models.PendingReward{
					Account:  staker.Account,
					NodeID:   aggregate.NodeID,
					EarnedAt: now,
				}
			}
			pending.Amount += stakerShare
			pending.LastUpdated = now
			if err := e.db.SetPendingReward(pending, txn); err != nil {
				return err
			}
		}
	}
	return nil
}

// ClaimReward pays out and removes the pending reward for one node
func (e *Engine) ClaimReward(account string, nodeID []byte) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidInput)
	}
	if len(nodeID) != sha256.Size {
		return fmt.Errorf("%w: node ID must be 32 bytes", ErrInvalidInput)
	}

	var claimed uint64
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := e.loadGlobals(txn); err != nil {
			return err
		}
		pending, err := e.db.GetPendingReward(account, nodeID, txn)
		if err != nil {
			return err
		}
		if pending == nil || pending.Amount == 0 {
			return fmt.Errorf("%w: no pending rewards for this node", ErrNotFound)
		}
		claimed = pending.Amount
		return e.db.DeletePendingReward(pending, txn)
	})
	if err != nil {
		return err
	}
	if err := e.dispatch([]tokenEffect{
		moveEffect(
			e.escrowAccount,
			account,
			claimed,
			fmt.Sprintf("staker reward from node %x", nodeID[:8]),
		),
	}); err != nil {
		return err
	}
	e.publish(RewardClaimEventType, RewardClaimEvent{
		Account:   account,
		Amount:    claimed,
		NodeCount: 1,
	})
	return nil
}

// ClaimAll pays out and removes every pending reward the account holds. The
// full record list is collected before any record is erased, then all are
// erased, then a single payment is made, so a failure mid-payment cannot
// leave records erased but unpaid.
func (e *Engine) ClaimAll(account string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidInput)
	}

	var total uint64
	var nodeCount uint32
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := e.loadGlobals(txn); err != nil {
			return err
		}
		// Collect the full list before erasing anything
		rewards, err := e.db.GetPendingRewardsByAccount(account, txn)
		if err != nil {
			return err
		}
		for _, reward := range rewards {
			if reward.Amount > 0 {
				total += reward.Amount
				nodeCount++
			}
		}
		if total == 0 {
			return fmt.Errorf("%w: no pending rewards", ErrNotFound)
		}
		for i := range rewards {
			if err := e.db.DeletePendingReward(&rewards[i], txn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.dispatch([]tokenEffect{
		moveEffect(
			e.escrowAccount,
			account,
			total,
			fmt.Sprintf("staker rewards from %d nodes", nodeCount),
		),
	}); err != nil {
		return err
	}
	e.publish(RewardClaimEventType, RewardClaimEvent{
		Account:   account,
		Amount:    total,
		NodeCount: nodeCount,
	})
	return nil
}
