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

const OrderEventName = "order_events"

type EventType string

const (
	TypeCreated   EventType = "created"
	TypeCancelled EventType = "cancelled"
	TypeDeleted   EventType = "deleted"
)

// OrderEvent 订单生命周期事件
type OrderEvent struct {
	SN         string    `json:"sn"`
	Type       EventType `json:"type"`
	CustomerSN string    `json:"customerSN"`
	Amount     int64     `json:"amount"`
	Ctime      int64     `json:"ctime"`
}
