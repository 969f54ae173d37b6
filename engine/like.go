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

// Like records an account's like on a graph node along with the discovery
// path walked to reach it. The path must end at the liked node. Re-liking an
// already-liked node refreshes the stored path without touching the counter,
// so an account can never inflate a node's like count.
//
// Likes carry no token effects and are not pause-gated.
func (e *Engine) Like(account string, nodeID []byte, path [][]byte) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidInput)
	}
	if len(nodeID) != sha256.Size {
		return fmt.Errorf("%w: node ID must be 32 bytes", ErrInvalidInput)
	}
	if len(path) < 1 || len(path) > MaxLikePathLen {
		return fmt.Errorf(
			"%w: path must contain 1-%d nodes",
			ErrInvalidInput,
			MaxLikePathLen,
		)
	}
	for _, p := range path {
		if len(p) != sha256.Size {
			return fmt.Errorf(
				"%w: path elements must be 32 bytes",
				ErrInvalidInput,
			)
		}
	}
	if !bytes.Equal(path[len(path)-1], nodeID) {
		return fmt.Errorf(
			"%w: path must end at the liked node",
			ErrInvalidInput,
		)
	}

	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := e.loadGlobals(txn); err != nil {
			return err
		}
		like, err := e.db.GetLike(account, nodeID, txn)
		if err != nil {
			return err
		}
		// Snapshot before mutation
		isNewLike := like == nil
		if isNewLike {
			like = &models.Like{
				Account: account,
				NodeID:  nodeID,
				LikedAt: e.now(),
			}
		}
		like.SetPath(path)
		if err := e.db.SetLike(like, txn); err != nil {
			return err
		}
		if !isNewLike {
			return nil
		}
		aggregate, err := e.db.GetLikeAggregate(nodeID, txn)
		if err != nil {
			return err
		}
		if aggregate == nil {
			aggregate = &models.LikeAggregate{NodeID: nodeID}
		}
		aggregate.LikeCount++
		return e.db.SetLikeAggregate(aggregate, txn)
	})
	if err != nil {
		return err
	}
	e.publish(LikeEventType, LikeEvent{
		Account: account,
		NodeID:  nodeID,
	})
	return nil
}

// Unlike removes an account's like and decrements the node's counter,
// removing the counter row entirely when it reaches zero
func (e *Engine) Unlike(account string, nodeID []byte) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidInput)
	}
	if len(nodeID) != sha256.Size {
		return fmt.Errorf("%w: node ID must be 32 bytes", ErrInvalidInput)
	}

	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := e.loadGlobals(txn); err != nil {
			return err
		}
		like, err := e.db.GetLike(account, nodeID, txn)
		if err != nil {
			return err
		}
		if like == nil {
			return fmt.Errorf("%w: no like to remove", ErrNotFound)
		}
		if err := e.db.DeleteLike(like, txn); err != nil {
			return err
		}
		aggregate, err := e.db.GetLikeAggregate(nodeID, txn)
		if err != nil {
			return err
		}
		if aggregate == nil || aggregate.LikeCount == 0 {
			return fmt.Errorf("%w: like counter out of sync", ErrCorruptState)
		}
		aggregate.LikeCount--
		if aggregate.LikeCount == 0 {
			return e.db.DeleteLikeAggregate(aggregate, txn)
		}
		return e.db.SetLikeAggregate(aggregate, txn)
	})
	if err != nil {
		return err
	}
	e.publish(LikeEventType, LikeEvent{
		Account: account,
		NodeID:  nodeID,
		Unlike:  true,
	})
	return nil
}
