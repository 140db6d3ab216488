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

package ioc

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/kafka"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/gotomicro/ego/core/econf"
)

type topic struct {
	Name       string `yaml:"name"`
	Partitions int    `yaml:"partitions"`
}

func InitMQ() mq.MQ {
	type Config struct {
		Network   string   `yaml:"network"`
		Addresses []string `yaml:"addresses"`
		Topics    []topic  `yaml:"topics"`
	}
	var cfg Config
	err := econf.UnmarshalKey("kafka", &cfg)
	if err != nil {
		panic(err)
	}

	q, err := kafka.NewMQ(cfg.Network, cfg.Addresses)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, t := range withDefaultTopics(cfg.Topics) {
		if err = q.CreateTopic(ctx, t.Name, t.Partitions); err != nil {
			panic(fmt.Errorf("创建Topic失败: Topic = %s, Partitions = %d, %w", t.Name, t.Partitions, err))
		}
	}
	return q
}

// withDefaultTopics 订单事件的 topic 没有配置的时候也要创建
func withDefaultTopics(topics []topic) []topic {
	for _, t := range topics {
		if t.Name == order.OrderEventName {
			return topics
		}
	}
	return append(topics, topic{Name: order.OrderEventName, Partitions: 1})
}
