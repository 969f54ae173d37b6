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
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/database/models"
)

// Submit anchors an off-chain event. Only the SHA-256 hash of the event body
// is recorded; the body itself lives off-chain. When a raw body is supplied
// it must hash to the given hash and is archived in the blob store within the
// same commit scope.
//
// Content-type submissions are priced on the emission curve against the
// counter value captured before the counter advances, so the Nth content
// submission is always priced with x=N. The escrow mint is reserved at
// submission time; finalize only decides who receives it.
func (e *Engine) Submit(
	author string,
	eventType uint8,
	hash []byte,
	parent []byte,
	originTime uint64,
	tags []string,
	body []byte,
) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if author == "" {
		return fmt.Errorf("%w: empty author", ErrInvalidInput)
	}
	if eventType < MinEventType || eventType > MaxEventType {
		return fmt.Errorf("%w: event type %d", ErrInvalidInput, eventType)
	}
	if len(hash) != sha256.Size {
		return fmt.Errorf("%w: hash must be 32 bytes", ErrInvalidInput)
	}
	if parent != nil && len(parent) != sha256.Size {
		return fmt.Errorf("%w: parent hash must be 32 bytes", ErrInvalidInput)
	}
	if originTime < MinOriginTime {
		return fmt.Errorf(
			"%w: timestamp too far in past (minimum 2023-01-01)",
			ErrInvalidInput,
		)
	}
	if len(tags) > MaxTags {
		return fmt.Errorf("%w: too many tags (max %d)", ErrInvalidInput, MaxTags)
	}
	for _, tag := range tags {
		if len(tag) < MinTagLen || len(tag) > MaxTagLen {
			return fmt.Errorf(
				"%w: tag %q must be %d-%d characters",
				ErrInvalidInput,
				tag,
				MinTagLen,
				MaxTagLen,
			)
		}
	}
	if body != nil {
		bodyHash := sha256.Sum256(body)
		if !bytes.Equal(bodyHash[:], hash) {
			return fmt.Errorf("%w: body does not match hash", ErrInvalidInput)
		}
	}
	now := e.now()
	if originTime > now+MaxFutureSkew {
		return fmt.Errorf(
			"%w: timestamp too far in future (max %d sec)",
			ErrInvalidInput,
			MaxFutureSkew,
		)
	}

	var effects []tokenEffect
	var evt AnchorEvent
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		globals, err := e.loadGlobals(txn)
		if err != nil {
			return err
		}
		if globals.Paused {
			return ErrPaused
		}
		existing, err := e.db.GetAnchorByHash(hash, txn)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: event hash", ErrAlreadyExists)
		}
		if parent != nil {
			parentAnchor, err := e.db.GetAnchorByHash(parent, txn)
			if err != nil {
				return err
			}
			if parentAnchor == nil {
				return fmt.Errorf("%w: parent event", ErrNotFound)
			}
		}

		// Capture submission-time x before any advance
		submissionX := globals.X

		// Price the escrow mint on the curve for content types
		var mint uint64
		if isContentType(eventType) {
			carry, err := parseCarry(globals.Carry)
			if err != nil {
				return err
			}
			var newCarry = carry
			mint, newCarry, err = computeEmission(
				multiplier(globals, eventType),
				submissionX,
				carry,
			)
			if err != nil {
				return err
			}
			globals.Carry = newCarry.String()
		}
		if mint > 0 {
			effects = append(effects, mintEffect(
				e.escrowAccount,
				mint,
				fmt.Sprintf("escrow for anchor %x", hash[:8]),
			))
		}

		anchor := &models.Anchor{
			Author:         author,
			Type:           eventType,
			Hash:           hash,
			Parent:         parent,
			OriginTime:     originTime,
			ExpiresAt:      now + uint64(voteWindow(globals, eventType)),
			Finalized:      false,
			EscrowedAmount: mint,
			SubmissionX:    submissionX,
		}
		anchor.SetTags(tags)
		if err := e.db.AddAnchor(anchor, txn); err != nil {
			return err
		}

		// Archive the body in the same commit scope
		if body != nil {
			if err := e.db.AddEventBody(hash, body, txn); err != nil {
				return err
			}
		}

		// Advance the counter only for content submissions, after pricing
		if isContentType(eventType) {
			globals.X = submissionX + 1
		}
		if err := e.db.SetGlobals(globals, txn); err != nil {
			return err
		}

		evt = AnchorEvent{
			Author:      author,
			Type:        eventType,
			Hash:        hash,
			AnchorID:    anchor.ID,
			SubmissionX: submissionX,
			Escrowed:    mint,
		}
		if e.metrics != nil {
			e.metrics.anchorsTotal.Inc()
			e.metrics.emissionX.Set(float64(globals.X))
			if mint > 0 {
				e.metrics.mintedTotal.Add(float64(mint))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.dispatch(effects); err != nil {
		return err
	}
	e.publish(AnchorEventType, evt)
	e.logger.Debug(
		"anchor submitted",
		"author", author,
		"type", eventType,
		"hash", fmt.Sprintf("%x", hash),
		"escrowed", evt.Escrowed,
	)
	return nil
}
