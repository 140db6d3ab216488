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

package testioc

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
)

var (
	q          mq.MQ
	mqInitOnce sync.Once
)

// InitMQ 使用内存实现，topic 都只有一个分区
func InitMQ(topics ...string) mq.MQ {
	mqInitOnce.Do(func() {
		qq := memory.NewMQ()
		for _, topic := range append([]string{"order_events"}, topics...) {
			if err := qq.CreateTopic(context.Background(), topic, 1); err != nil {
				panic(fmt.Errorf("创建Topic失败: %s, %w", topic, err))
			}
		}
		q = qq
	})
	return q
}
