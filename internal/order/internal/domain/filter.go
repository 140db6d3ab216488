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

import (
	"strings"
	"time"
)

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterExpired   StatusFilter = "expired"
	FilterCancelled StatusFilter = "cancelled"
)

func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterExpired, FilterCancelled:
		return true
	}
	return false
}

func (f StatusFilter) Match(o Order, now time.Time) bool {
	switch f {
	case FilterCancelled:
		return o.Cancelled()
	case FilterActive:
		return !o.Cancelled() && o.Active(now)
	case FilterExpired:
		return !o.Cancelled() && !o.Active(now)
	default:
		return true
	}
}

// Query 订单列表的查询条件
type Query struct {
	Status     StatusFilter
	Search     string
	CustomerSN string
	Offset     int
	Limit      int
}

// FilterOrders 状态和关键字同时满足，保持原有顺序
func FilterOrders(orders []Order, status StatusFilter, search string, now time.Time) []Order {
	search = strings.ToLower(strings.TrimSpace(search))
	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		if status.Match(o, now) && matchSearch(o, search) {
			res = append(res, o)
		}
	}
	return res
}

func matchSearch(o Order, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range []string{o.CustomerName, o.CustomerPhone, o.SN, o.Notes} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
