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
	"time"

	"github.com/ecodeclub/resale/internal/pkg/duration"
)

const millisPerDay = 24 * 60 * 60 * 1000

// RecommendRefund 按照剩余天数折算建议退款金额，只是给操作员参考
func RecommendRefund(o Order, now time.Time) int64 {
	usedDays := float64(now.UnixMilli()-o.Ctime) / millisPerDay
	if usedDays < 0 {
		usedDays = 0
	}
	var res int64
	for _, item := range o.Items {
		totalDays := duration.DaysFor(item.UsageTime)
		if totalDays == 0 {
			continue
		}
		remaining := math.Max(0, float64(totalDays)-usedDays)
		res += int64(math.Floor(float64(item.PriceAtSale) * remaining / float64(totalDays)))
	}
	return res
}
