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

// Cart 下单请求
type Cart struct {
	// CustomerSN 和 NewCustomer 二选一
	CustomerSN  string
	NewCustomer *Buyer
	Lines       []CartLine
	Notes       string
	// OrderDate 为 0 的时候使用当前时间
	OrderDate int64
}

type CartLine struct {
	ProductSN string
	VariantSN string
	// PriceOverride 为 nil 的时候使用规格当前售价
	PriceOverride *int64
	// UsageTime 为空的时候使用规格的时长
	UsageTime duration.Label
}

// Buyer 新客户的资料
type Buyer struct {
	Name       string
	Phone      string
	Email      string
	SocialLink string
}
