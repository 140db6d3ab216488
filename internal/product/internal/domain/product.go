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

package domain

import "github.com/ecodeclub/resale/internal/pkg/duration"

// Product 商品，例如某个平台的会员账号
type Product struct {
	ID   int64
	SN   string
	Name string
	// Source 进货渠道
	Source   string
	Variants []Variant
	Ctime    int64
	Utime    int64
}

// Orderable 至少有一个规格才能下单
func (p Product) Orderable() bool {
	return len(p.Variants) > 0
}

func (p Product) Variant(sn string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.SN == sn {
			return v, true
		}
	}
	return Variant{}, false
}

// Variant 商品规格，按照使用时长区分
type Variant struct {
	ID       int64
	SN       string
	Duration duration.Label
	// ImportPrice 进货价
	ImportPrice int64
	// SellPrice 售价
	SellPrice int64
}
