// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snowflake

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/ekit/syncx"
)

// Kind 业务类型，每一种业务占用一个独立的 snowflake 节点
type Kind uint

const (
	KindProduct Kind = iota
	KindVariant
	KindCustomer
	KindOrder
	kindCount
)

const (
	maxNode uint = 31
	maxKind uint = 31
)

var (
	ErrExceedNode  = errors.New("node超出限制")
	ErrUnknownKind = errors.New("未知的业务类型")
)

// +-----------------------------------------------------------------------------------------+
// | 1 Bit Unused | 41 Bit Timestamp |  5 Bit Kind | 5 Bit NodeID  |   12 Bit Sequence ID    |
// +-----------------------------------------------------------------------------------------+

type Generator struct {
	nodes syncx.Map[Kind, *snowflake.Node]
}

// NewGenerator nodeId 表示第几个实例，从 0 开始
func NewGenerator(nodeId uint) (*Generator, error) {
	if nodeId > maxNode {
		return nil, fmt.Errorf("%w: %d", ErrExceedNode, nodeId)
	}
	g := &Generator{}
	for k := Kind(0); k < kindCount; k++ {
		n, err := snowflake.NewNode(int64(uint(k)<<5 | nodeId))
		if err != nil {
			return nil, err
		}
		g.nodes.Store(k, n)
	}
	return g, nil
}

func (g *Generator) Generate(kind Kind) (ID, error) {
	n, ok := g.nodes.Load(kind)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	return ID(n.Generate()), nil
}

type ID int64

func (id ID) Kind() Kind {
	return Kind(uint(snowflake.ID(id).Node()) >> 5)
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) Base36() string {
	return snowflake.ID(id).Base36()
}
