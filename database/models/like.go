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

import (
	"encoding/hex"
	"strings"
)

// Like records an account liking a graph node, along with the discovery path
// taken through the graph to reach it.
type Like struct {
	ID      uint   `gorm:"primarykey"`
	Account string `gorm:"uniqueIndex:uniq_like_acct_node,priority:1;size:64;not null"`
	NodeID  []byte `gorm:"uniqueIndex:uniq_like_acct_node,priority:2;size:32;not null"`
	Path    string `gorm:"size:1344"` // hex node hashes, comma-separated, max 20
	LikedAt uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Like) TableName() string {
	return "like"
}

// SetPath stores the discovery path as comma-separated hex hashes
func (l *Like) SetPath(path [][]byte) {
	elems := make([]string, 0, len(path))
	for _, p := range path {
		elems = append(elems, hex.EncodeToString(p))
	}
	l.Path = strings.Join(elems, ",")
}

// PathList returns the discovery path node hashes
func (l *Like) PathList() [][]byte {
	if l.Path == "" {
		return nil
	}
	elems := strings.Split(l.Path, ",")
	ret := make([][]byte, 0, len(elems))
	for _, e := range elems {
		decoded, err := hex.DecodeString(e)
		if err != nil {
			return nil
		}
		ret = append(ret, decoded)
	}
	return ret
}

// LikeAggregate tracks the like count for a node. The row is removed once the
// count reaches zero.
type LikeAggregate struct {
	ID        uint   `gorm:"primarykey"`
	NodeID    []byte `gorm:"uniqueIndex;size:32;not null"`
	LikeCount uint32 `gorm:"not null"`
}

// TableName returns the table name
func (LikeAggregate) TableName() string {
	return "like_aggregate"
}
