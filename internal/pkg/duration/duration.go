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

// Package duration 解析商品的使用时长，例如 "1 tháng"、"1 năm"、"Vĩnh viễn"
package duration

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

type Label string

const (
	OneMonth    Label = "1 tháng"
	TwoMonths   Label = "2 tháng"
	ThreeMonths Label = "3 tháng"
	SixMonths   Label = "6 tháng"
	NineMonths  Label = "9 tháng"
	OneYear     Label = "1 năm"
	Lifetime    Label = "Vĩnh viễn"
)

const (
	unitMonth = "tháng"
	unitYear  = "năm"
	unitDay   = "ngày"

	daysPerMonth = 30
	daysPerYear  = 365
)

// Options 后台可选的使用时长
var Options = []Label{OneMonth, TwoMonths, ThreeMonths, SixMonths, NineMonths, OneYear, Lifetime}

func (l Label) String() string {
	return string(l)
}

// IsLifetime 空值和 "Vĩnh viễn" 都表示永久
func (l Label) IsLifetime() bool {
	s := strings.TrimSpace(string(l))
	return s == "" || strings.EqualFold(s, string(Lifetime))
}

// Valid 是否在可选范围内
func (l Label) Valid() bool {
	for _, o := range Options {
		if o == l {
			return true
		}
	}
	return false
}

// DaysFor 按照一个月 30 天，一年 365 天折算。
// 永久或者无法解析的时候返回 0
func DaysFor(l Label) int {
	n, unit, ok := parse(l)
	if !ok {
		return 0
	}
	switch unit {
	case unitMonth:
		return n * daysPerMonth
	case unitYear:
		return n * daysPerYear
	case unitDay:
		return n
	default:
		return 0
	}
}

// ExpiryDate 按照日历计算到期时间，第二个返回值为 false 表示永不过期。
// 月份溢出遵循 time.AddDate 的规则，例如 1 月 31 日加一个月会得到 3 月 2 日或者 3 日
func ExpiryDate(start time.Time, l Label) (time.Time, bool) {
	if l.IsLifetime() {
		return time.Time{}, false
	}
	n, unit, ok := parse(l)
	if !ok {
		return time.Time{}, false
	}
	switch unit {
	case unitMonth:
		return start.AddDate(0, n, 0), true
	case unitYear:
		return start.AddDate(n, 0, 0), true
	case unitDay:
		return start.AddDate(0, 0, n), true
	default:
		return time.Time{}, false
	}
}

// parse 解析前导整数和单位
func parse(l Label) (int, string, bool) {
	s := strings.ToLower(strings.TrimSpace(string(l)))
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, "", false
	}
	rest := s[end:]
	for _, unit := range []string{unitMonth, unitYear, unitDay} {
		if strings.Contains(rest, unit) {
			return n, unit, true
		}
	}
	return n, "", false
}
