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

import "errors"

// Sentinel failure categories. Every operation failure wraps exactly one of
// these, so callers can branch with errors.Is without parsing messages.
var (
	ErrNotInitialized      = errors.New("registry not initialized")
	ErrPaused              = errors.New("registry is paused")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrAlreadyFinalized    = errors.New("already finalized")
	ErrWindowClosed        = errors.New("voting window has closed")
	ErrWindowOpen          = errors.New("voting window still open")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrCorruptState        = errors.New("corrupt state")
)
