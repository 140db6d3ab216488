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

package sequencenumber

import (
	"fmt"
	"strings"

	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"github.com/lithammer/shortuuid/v4"
)

// IDGenerateFunc 定义生成全局唯一 ID 的函数类型
type IDGenerateFunc func(kind snowflake.Kind) (snowflake.ID, error)

// ShortUUIDGenerateFunc 定义生成ShortUUID的函数类型
type ShortUUIDGenerateFunc func() string

const uuidSuffixLen = 4

var prefixes = map[snowflake.Kind]string{
	snowflake.KindProduct:  "SP",
	snowflake.KindVariant:  "GH",
	snowflake.KindCustomer: "KH",
	snowflake.KindOrder:    "DH",
}

// Generator 生成对外展示的业务编号
type Generator struct {
	idGenFunc        IDGenerateFunc
	shortUUIDGenFunc ShortUUIDGenerateFunc
}

// NewGeneratorWith 创建一个Generator实例
func NewGeneratorWith(idGen IDGenerateFunc, uuidGen ShortUUIDGenerateFunc) *Generator {
	return &Generator{
		idGenFunc:        idGen,
		shortUUIDGenFunc: uuidGen,
	}
}

// NewGenerator 创建一个Generator实例
func NewGenerator(sf *snowflake.Generator) *Generator {
	return NewGeneratorWith(sf.Generate, func() string { return shortuuid.New() })
}

// Generate 业务前缀 + snowflake 的 36 进制编码 + 短 uuid 的前四位
func (s *Generator) Generate(kind snowflake.Kind) (string, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return "", fmt.Errorf("%w: %d", snowflake.ErrUnknownKind, kind)
	}
	id, err := s.idGenFunc(kind)
	if err != nil {
		return "", fmt.Errorf("生成ID失败: %w", err)
	}
	uuid := s.shortUUIDGenFunc()
	if len(uuid) > uuidSuffixLen {
		uuid = uuid[:uuidSuffixLen]
	}
	return prefix + strings.ToUpper(id.Base36()) + uuid, nil
}
