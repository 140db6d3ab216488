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

package web

type SNReq struct {
	SN string `json:"sn"`
}

type CreateOrderReq struct {
	// RequestID 防止重复提交
	RequestID   string     `json:"requestID"`
	CustomerSN  string     `json:"customerSN,omitempty"`
	NewCustomer *Buyer     `json:"newCustomer,omitempty"`
	Lines       []CartLine `json:"lines"`
	Notes       string     `json:"notes,omitempty"`
	// OrderDate 毫秒，0 表示当前时间
	OrderDate int64 `json:"orderDate,omitempty"`
}

type Buyer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	SocialLink string `json:"socialLink,omitempty"`
}

type CartLine struct {
	ProductSN     string `json:"productSN"`
	VariantSN     string `json:"variantSN,omitempty"`
	PriceOverride *int64 `json:"priceOverride,omitempty"`
	UsageTime     string `json:"usageTime,omitempty"`
}

type ListReq struct {
	// Status all/active/expired/cancelled
	Status     string `json:"status,omitempty"`
	Search     string `json:"search,omitempty"`
	CustomerSN string `json:"customerSN,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type ListResp struct {
	Total  int     `json:"total"`
	Orders []Order `json:"orders"`
}

type CancelReq struct {
	SN                 string `json:"sn"`
	RefundToCustomer   int64  `json:"refundToCustomer"`
	RefundFromSupplier int64  `json:"refundFromSupplier"`
	Reason             string `json:"reason,omitempty"`
}

type RecommendRefundResp struct {
	Amount int64 `json:"amount"`
}

type DashboardReq struct {
	// Window today/week/month/all/custom
	Window string `json:"window"`
	// Start End 毫秒，只在 custom 的时候使用
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

type DashboardResp struct {
	Revenue        int64   `json:"revenue"`
	Profit         int64   `json:"profit"`
	OrderCount     int     `json:"orderCount"`
	TotalCustomers int64   `json:"totalCustomers"`
	RecentOrders   []Order `json:"recentOrders"`
}

type Order struct {
	SN            string      `json:"sn"`
	CustomerSN    string      `json:"customerSN"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	Items         []OrderItem `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        string      `json:"status"`
	// State active/expired/cancelled
	State  string  `json:"state"`
	Notes  string  `json:"notes,omitempty"`
	Refund *Refund `json:"refund,omitempty"`
	Ctime  int64   `json:"ctime"`
}

type OrderItem struct {
	ProductSN   string `json:"productSN"`
	VariantSN   string `json:"variantSN"`
	Name        string `json:"name"`
	PriceAtSale int64  `json:"priceAtSale"`
	CostAtSale  int64  `json:"costAtSale"`
	UsageTime   string `json:"usageTime"`
	// ExpiryDate 0 表示永不过期
	ExpiryDate int64 `json:"expiryDate"`
}

type Refund struct {
	RefundToCustomer   int64  `json:"refundToCustomer"`
	RefundFromSupplier int64  `json:"refundFromSupplier"`
	RefundDate         int64  `json:"refundDate"`
	Reason             string `json:"reason,omitempty"`
}
