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
	"math"
	"sort"
	"time"
)

type WindowKind string

const (
	WindowToday  WindowKind = "today"
	WindowWeek   WindowKind = "week"
	WindowMonth  WindowKind = "month"
	WindowAll    WindowKind = "all"
	WindowCustom WindowKind = "custom"
)

// TimeWindow 统计的时间范围，Start 和 End 只在 WindowCustom 下使用，只看日期部分
type TimeWindow struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Valid() bool {
	switch w.Kind {
	case WindowToday, WindowWeek, WindowMonth, WindowAll:
		return true
	case WindowCustom:
		// 按天比较，和 Range 一致
		return !w.Start.IsZero() && !w.End.IsZero() && !startOfDay(w.End).Before(startOfDay(w.Start))
	default:
		return false
	}
}

// Range 返回 [start, end) 毫秒
func (w TimeWindow) Range(now time.Time) (int64, int64) {
	switch w.Kind {
	case WindowToday:
		start := startOfDay(now)
		return start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli()
	case WindowWeek:
		return now.Add(-7 * 24 * time.Hour).UnixMilli(), math.MaxInt64
	case WindowMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start.UnixMilli(), start.AddDate(0, 1, 0).UnixMilli()
	case WindowCustom:
		// 包含结束那一天的 23:59:59
		return startOfDay(w.Start).UnixMilli(), startOfDay(w.End).AddDate(0, 0, 1).UnixMilli()
	default:
		return 0, math.MaxInt64
	}
}

func (w TimeWindow) Contains(o Order, now time.Time) bool {
	start, end := w.Range(now)
	return o.Ctime >= start && o.Ctime < end
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type Stats struct {
	Revenue int64
	Profit  int64
	// OrderCount 包含已取消的订单
	OrderCount int
}

func ComputeStats(orders []Order, window TimeWindow, now time.Time) Stats {
	var res Stats
	for _, o := range orders {
		if !window.Contains(o, now) {
			continue
		}
		res.OrderCount++
		res.Revenue += o.Revenue()
		res.Profit += o.Profit()
	}
	return res
}

// Recent 按照创建时间倒序取前 n 个，不会修改 orders
func Recent(orders []Order, n int) []Order {
	res := make([]Order, len(orders))
	copy(res, orders)
	SortByCtimeDesc(res)
	if len(res) > n {
		res = res[:n]
	}
	return res
}

func SortByCtimeDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Ctime > orders[j].Ctime
	})
}

// Dashboard 首页看板
type Dashboard struct {
	Stats          Stats
	RecentOrders   []Order
	TotalCustomers int64
}
