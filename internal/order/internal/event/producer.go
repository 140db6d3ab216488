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

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
)

//go:generate mockgen -source=./producer.go -package=evtmocks -destination=./mocks/producer.mock.go OrderEventProducer
type OrderEventProducer interface {
	Produce(ctx context.Context, evt OrderEvent) error
}

// mqOrderEventProducer 用订单号作为 key，同一个订单的事件落在同一个分区
type mqOrderEventProducer struct {
	topic    string
	producer mq.Producer
}

func NewOrderEventProducer(q mq.MQ) (OrderEventProducer, error) {
	p, err := q.Producer(OrderEventName)
	if err != nil {
		return nil, fmt.Errorf("创建 %s 生产者失败: %w", OrderEventName, err)
	}
	return &mqOrderEventProducer{topic: OrderEventName, producer: p}, nil
}

func (p *mqOrderEventProducer) Produce(ctx context.Context, evt OrderEvent) error {
	if evt.Ctime == 0 {
		evt.Ctime = time.Now().UnixMilli()
	}
	val, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化 %s 事件失败: %w", evt.Type, err)
	}
	if _, err = p.producer.Produce(ctx, &mq.Message{Key: []byte(evt.SN), Value: val}); err != nil {
		return fmt.Errorf("发送消息到 %s 失败: %w", p.topic, err)
	}
	return nil
}
