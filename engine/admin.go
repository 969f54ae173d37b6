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

// Governance parameter bounds enforced on admin updates
const (
	MinApprovalThresholdBp = 5000
	MaxApprovalThresholdBp = 9500
	MaxAdminVoteWeight     = 10000
	MaxAttestorThreshold   = 1000
)

// requireAdmin rejects any caller other than the configured admin account.
// Admin operations deliberately skip the pause gate so a paused registry can
// still be reconfigured and unpaused.
func (e *Engine) requireAdmin(caller string) error {
	if e.adminAccount == "" || caller != e.adminAccount {
		return fmt.Errorf("%w: caller is not the admin", ErrUnauthorized)
	}
	return nil
}

// updateGlobals runs fn against the globals row inside a write transaction
func (e *Engine) updateGlobals(fn func(g *models.Globals) error) error {
	txn := e.db.Transaction(true)
	return txn.Do(func(txn *database.Txn) error {
		globals, err := e.loadGlobals(txn)
		if err != nil {
			return err
		}
		if err := fn(globals); err != nil {
			return err
		}
		return e.db.SetGlobals(globals, txn)
	})
}

// SetOracle designates the account allowed to push reputation batches
func (e *Engine) SetOracle(caller, oracle string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if oracle == "" {
		return fmt.Errorf("%w: empty oracle account", ErrInvalidInput)
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		g.OracleAccount = oracle
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("oracle account updated", "oracle", oracle)
	return nil
}

// SetParams updates the voting governance parameters. The approval threshold
// is bounded away from both simple majority and unanimity.
func (e *Engine) SetParams(
	caller string,
	approvalThresholdBp uint64,
	maxVoteWeight uint32,
	attestorThreshold uint32,
) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if approvalThresholdBp < MinApprovalThresholdBp ||
		approvalThresholdBp > MaxApprovalThresholdBp {
		return fmt.Errorf(
			"%w: approval threshold must be %d-%d bp",
			ErrInvalidInput,
			MinApprovalThresholdBp,
			MaxApprovalThresholdBp,
		)
	}
	if maxVoteWeight < 1 || maxVoteWeight > MaxAdminVoteWeight {
		return fmt.Errorf(
			"%w: max vote weight must be 1-%d",
			ErrInvalidInput,
			MaxAdminVoteWeight,
		)
	}
	if attestorThreshold < 1 || attestorThreshold > MaxAttestorThreshold {
		return fmt.Errorf(
			"%w: attestor threshold must be 1-%d",
			ErrInvalidInput,
			MaxAttestorThreshold,
		)
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		g.ApprovalThresholdBp = approvalThresholdBp
		g.MaxVoteWeight = maxVoteWeight
		g.AttestorThreshold = attestorThreshold
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info(
		"governance parameters updated",
		"approval_threshold_bp", approvalThresholdBp,
		"max_vote_weight", maxVoteWeight,
		"attestor_threshold", attestorThreshold,
	)
	return nil
}

// VoteWindows carries the per-type voting windows, in seconds
type VoteWindows struct {
	Release uint32
	Mint    uint32
	Resolve uint32
	Claim   uint32
	Merge   uint32
	Default uint32
}

// SetVoteWindows updates the per-type voting windows. Each window must fall
// between one hour and thirty days.
func (e *Engine) SetVoteWindows(caller string, windows VoteWindows) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	for _, w := range []uint32{
		windows.Release,
		windows.Mint,
		windows.Resolve,
		windows.Claim,
		windows.Merge,
		windows.Default,
	} {
		if w < MinVoteWindow || w > MaxVoteWindow {
			return fmt.Errorf(
				"%w: vote window must be %d-%d seconds",
				ErrInvalidInput,
				MinVoteWindow,
				MaxVoteWindow,
			)
		}
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		g.VoteWindowRelease = windows.Release
		g.VoteWindowMint = windows.Mint
		g.VoteWindowResolve = windows.Resolve
		g.VoteWindowClaim = windows.Claim
		g.VoteWindowMerge = windows.Merge
		g.VoteWindowDefault = windows.Default
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("vote windows updated")
	return nil
}

// Multipliers carries the per-type emission multipliers
type Multipliers struct {
	Release   uint64
	Mint      uint64
	Resolve   uint64
	AddClaim  uint64
	EditClaim uint64
	Merge     uint64
}

// SetMultipliers updates the per-type emission multipliers. Zero is allowed
// and disables emission for that type.
func (e *Engine) SetMultipliers(caller string, multipliers Multipliers) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	for _, m := range []uint64{
		multipliers.Release,
		multipliers.Mint,
		multipliers.Resolve,
		multipliers.AddClaim,
		multipliers.EditClaim,
		multipliers.Merge,
	} {
		if m > MaxMultiplier {
			return fmt.Errorf(
				"%w: multiplier exceeds maximum %d",
				ErrInvalidInput,
				MaxMultiplier,
			)
		}
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		g.MultiplierRelease = multipliers.Release
		g.MultiplierMint = multipliers.Mint
		g.MultiplierResolve = multipliers.Resolve
		g.MultiplierAddClaim = multipliers.AddClaim
		g.MultiplierEditClaim = multipliers.EditClaim
		g.MultiplierMerge = multipliers.Merge
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("emission multipliers updated")
	return nil
}

// Distribution carries the payout split ratios in basis points. The approved
// group and the rejected group must each sum to exactly 10000.
type Distribution struct {
	ApprovedAuthorBp  uint64
	ApprovedVotersBp  uint64
	ApprovedStakersBp uint64
	RejectedVotersBp  uint64
	RejectedStakersBp uint64
}

// SetDistribution updates the finalize-time payout split
func (e *Engine) SetDistribution(caller string, dist Distribution) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	approved := dist.ApprovedAuthorBp + dist.ApprovedVotersBp +
		dist.ApprovedStakersBp
	if approved != 10000 {
		return fmt.Errorf(
			"%w: approved distribution must sum to 10000 bp, got %d",
			ErrInvalidInput,
			approved,
		)
	}
	rejected := dist.RejectedVotersBp + dist.RejectedStakersBp
	if rejected != 10000 {
		return fmt.Errorf(
			"%w: rejected distribution must sum to 10000 bp, got %d",
			ErrInvalidInput,
			rejected,
		)
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		g.ApprovedAuthorBp = dist.ApprovedAuthorBp
		g.ApprovedVotersBp = dist.ApprovedVotersBp
		g.ApprovedStakersBp = dist.ApprovedStakersBp
		g.RejectedVotersBp = dist.RejectedVotersBp
		g.RejectedStakersBp = dist.RejectedStakersBp
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("distribution ratios updated")
	return nil
}

// Pause halts submissions, voting, staking, and finalization. Unstaking,
// claims, attestations, and oracle updates stay available so funds are never
// trapped by a pause.
func (e *Engine) Pause(caller string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		if g.Paused {
			return fmt.Errorf("%w: already paused", ErrInvalidInput)
		}
		g.Paused = true
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Warn("registry paused")
	return nil
}

// Unpause resumes normal operation
func (e *Engine) Unpause(caller string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	err := e.updateGlobals(func(g *models.Globals) error {
		if !g.Paused {
			return fmt.Errorf("%w: not paused", ErrInvalidInput)
		}
		g.Paused = false
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Warn("registry unpaused")
	return nil
}

// Reset wipes all registry state. It refuses to run unless resets were
// enabled at construction, and refuses once the registry holds meaningful
// history: more than a small number of anchors, or any stake at all. Escrowed
// token balances are NOT returned by a reset, which is why staked registries
// cannot be reset.
func (e *Engine) Reset(caller string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if !e.allowReset {
		return fmt.Errorf("%w: resets are disabled", ErrUnauthorized)
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := e.loadGlobals(txn); err != nil {
			return err
		}
		count, err := e.db.CountAnchors(txn)
		if err != nil {
			return err
		}
		if count > MaxResetAnchors {
			return fmt.Errorf(
				"%w: %d anchors exceeds reset limit %d",
				ErrInvalidInput,
				count,
				MaxResetAnchors,
			)
		}
		aggregates, err := e.db.GetNodeAggregates(txn)
		if err != nil {
			return err
		}
		for _, aggregate := range aggregates {
			if aggregate.Total > 0 {
				return fmt.Errorf(
					"%w: cannot reset with active stakes",
					ErrInvalidInput,
				)
			}
		}
		return e.db.Wipe(txn)
	})
	if err != nil {
		return err
	}
	e.logger.Warn("registry state wiped", "caller", caller)
	return nil
}
