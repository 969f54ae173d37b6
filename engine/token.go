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
	"sync"
)

// TokenLedger is the external token interface. Both operations are assumed
// all-or-nothing; the engine never observes a partial transfer.
type TokenLedger interface {
	// Mint creates new supply in the given account
	Mint(to string, amount uint64, memo string) error
	// Move transfers existing balance between accounts
	Move(from, to string, amount uint64, memo string) error
}

// tokenEffect is a queued external token call. Effects are collected while a
// store transaction is open and dispatched only after it commits, so a callee
// can never observe partially applied registry state.
type tokenEffect struct {
	from   string // empty for mint
	to     string
	memo   string
	amount uint64
}

func mintEffect(to string, amount uint64, memo string) tokenEffect {
	return tokenEffect{to: to, amount: amount, memo: memo}
}

func moveEffect(from, to string, amount uint64, memo string) tokenEffect {
	return tokenEffect{from: from, to: to, amount: amount, memo: memo}
}

// MemoryTokenLedger is an in-process TokenLedger backed by a balance map.
// It ships for dev mode and tests; production deployments wire a real token
// backend instead.
type MemoryTokenLedger struct {
	balances map[string]uint64
	mutex    sync.Mutex
}

func NewMemoryTokenLedger() *MemoryTokenLedger {
	return &MemoryTokenLedger{
		balances: make(map[string]uint64),
	}
}

func (l *MemoryTokenLedger) Mint(to string, amount uint64, memo string) error {
	if to == "" {
		return fmt.Errorf("%w: empty mint recipient", ErrInvalidInput)
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.balances[to] += amount
	return nil
}

func (l *MemoryTokenLedger) Move(
	from, to string,
	amount uint64,
	memo string,
) error {
	if from == "" || to == "" {
		return fmt.Errorf("%w: empty transfer account", ErrInvalidInput)
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.balances[from] < amount {
		return fmt.Errorf(
			"%w: %s has %d, needs %d",
			ErrInsufficientBalance,
			from,
			l.balances[from],
			amount,
		)
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

// Balance returns an account's current balance
func (l *MemoryTokenLedger) Balance(account string) uint64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.balances[account]
}
