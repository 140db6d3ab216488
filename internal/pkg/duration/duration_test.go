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

package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysFor(t *testing.T) {
	testCases := []struct {
		name  string
		label Label
		want  int
	}{
		{name: "一个月", label: OneMonth, want: 30},
		{name: "六个月", label: SixMonths, want: 180},
		{name: "一年", label: OneYear, want: 365},
		{name: "天", label: "15 ngày", want: 15},
		{name: "大写单位", label: "2 THÁNG", want: 60},
		{name: "永久", label: Lifetime, want: 0},
		{name: "空", label: "", want: 0},
		{name: "没有数字", label: "tháng", want: 0},
		{name: "没有单位", label: "12", want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysFor(tc.label))
		})
	}
}

func TestExpiryDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	testCases := []struct {
		name   string
		start  time.Time
		label  Label
		want   time.Time
		wantOK bool
	}{
		{
			name:   "一个月",
			start:  start,
			label:  OneMonth,
			want:   time.Date(2024, 2, 15, 8, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "一年",
			start:  start,
			label:  OneYear,
			want:   time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "闰年一月三十一日加一个月",
			start:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			label:  OneMonth,
			want:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "平年一月三十一日加一个月",
			start:  time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			label:  OneMonth,
			want:   time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "闰日加一年",
			start:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			label:  OneYear,
			want:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "天",
			start:  start,
			label:  "10 ngày",
			want:   time.Date(2024, 1, 25, 8, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:  "永久",
			start: start,
			label: Lifetime,
		},
		{
			name:  "永久小写",
			start: start,
			label: "vĩnh viễn",
		},
		{
			name:  "空",
			start: start,
			label: "",
		},
		{
			name:  "无法解析",
			start: start,
			label: "abc",
		},		{
			// 只有数字没有单位，按照永久处理
			name:  "没有单位",
			start: start,
			label: "12",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExpiryDate(tc.start, tc.label)
			assert.Equal(t, tc.wantOK, ok)
			assert.True(t, tc.want.Equal(got))
		})
	}
}

func TestLabel_Valid(t *testing.T) {
	for _, o := range Options {
		assert.True(t, o.Valid())
	}
	assert.False(t, Label("4 tháng").Valid())
	assert.True(t, Label("").IsLifetime())
	assert.False(t, OneMonth.IsLifetime())
}
