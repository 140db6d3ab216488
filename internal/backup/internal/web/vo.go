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

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/resale/internal/backup/internal/domain"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/ecodeclub/resale/internal/user"
)

// Snapshot 备份文件的格式，商品、客户、订单为 null 的时候认为文件不完整
type Snapshot struct {
	Products  []Product  `json:"products"`
	Customers []Customer `json:"customers"`
	Orders    []Order    `json:"orders"`
	Users     []User     `json:"users,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

type Product struct {
	SN       string    `json:"sn"`
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Variants []Variant `json:"variants"`
	Ctime    int64     `json:"ctime"`
	Utime    int64     `json:"utime"`
}

type Variant struct {
	SN          string `json:"sn"`
	Duration    string `json:"duration"`
	ImportPrice int64  `json:"importPrice"`
	SellPrice   int64  `json:"sellPrice"`
}

type Customer struct {
	ID         int64  `json:"id"`
	SN         string `json:"sn"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	SocialLink string `json:"socialLink"`
	Ctime      int64  `json:"ctime"`
	Utime      int64  `json:"utime"`
}

type Order struct {
	SN            string      `json:"sn"`
	CustomerSN    string      `json:"customerSN"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	Items         []OrderItem `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        string      `json:"status"`
	Notes         string      `json:"notes"`
	Refund        *Refund     `json:"refund,omitempty"`
	Ctime         int64       `json:"ctime"`
	Utime         int64       `json:"utime"`
}

type OrderItem struct {
	ProductSN   string `json:"productSN"`
	VariantSN   string `json:"variantSN"`
	Name        string `json:"name"`
	PriceAtSale int64  `json:"priceAtSale"`
	CostAtSale  int64  `json:"costAtSale"`
	UsageTime   string `json:"usageTime"`
}

type Refund struct {
	RefundToCustomer   int64  `json:"refundToCustomer"`
	RefundFromSupplier int64  `json:"refundFromSupplier"`
	RefundDate         int64  `json:"refundDate"`
	Reason             string `json:"reason"`
}

// User 密码只有哈希值
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Ctime    int64  `json:"ctime"`
	Utime    int64  `json:"utime"`
}

func newSnapshot(s domain.Snapshot) Snapshot {
	return Snapshot{
		Products: slice.Map(s.Products, func(idx int, src product.Product) Product {
			return Product{
				SN:     src.SN,
				Name:   src.Name,
				Source: src.Source,
				Variants: slice.Map(src.Variants, func(idx int, v product.Variant) Variant {
					return Variant{
						SN:          v.SN,
						Duration:    v.Duration.String(),
						ImportPrice: v.ImportPrice,
						SellPrice:   v.SellPrice,
					}
				}),
				Ctime: src.Ctime,
				Utime: src.Utime,
			}
		}),
		Customers: slice.Map(s.Customers, func(idx int, src customer.Customer) Customer {
			return Customer{
				ID:         src.ID,
				SN:         src.SN,
				Name:       src.Name,
				Phone:      src.Phone,
				Email:      src.Email,
				SocialLink: src.SocialLink,
				Ctime:      src.Ctime,
				Utime:      src.Utime,
			}
		}),
		Orders: slice.Map(s.Orders, func(idx int, src order.Order) Order {
			res := Order{
				SN:            src.SN,
				CustomerSN:    src.CustomerSN,
				CustomerName:  src.CustomerName,
				CustomerPhone: src.CustomerPhone,
				Items: slice.Map(src.Items, func(idx int, it order.OrderItem) OrderItem {
					return OrderItem{
						ProductSN:   it.ProductSN,
						VariantSN:   it.VariantSN,
						Name:        it.Name,
						PriceAtSale: it.PriceAtSale,
						CostAtSale:  it.CostAtSale,
						UsageTime:   it.UsageTime.String(),
					}
				}),
				TotalAmount: src.TotalAmount,
				Status:      src.Status.String(),
				Notes:       src.Notes,
				Ctime:       src.Ctime,
				Utime:       src.Utime,
			}
			if src.Refund != nil {
				res.Refund = &Refund{
					RefundToCustomer:   src.Refund.RefundToCustomer,
					RefundFromSupplier: src.Refund.RefundFromSupplier,
					RefundDate:         src.Refund.RefundDate,
					Reason:             src.Refund.Reason,
				}
			}
			return res
		}),
		Users: slice.Map(s.Users, func(idx int, src user.User) User {
			return User{
				ID:       src.ID,
				Username: src.Username,
				Password: src.Password,
				FullName: src.FullName,
				Ctime:    src.Ctime,
				Utime:    src.Utime,
			}
		}),
		Timestamp: s.Timestamp,
	}
}

// toDomain slice.Map 会把 nil 变成空切片，所以要先判断
func (s Snapshot) toDomain() domain.Snapshot {
	res := domain.Snapshot{Timestamp: s.Timestamp}
	if s.Products != nil {
		res.Products = slice.Map(s.Products, func(idx int, src Product) product.Product {
			return product.Product{
				SN:     src.SN,
				Name:   src.Name,
				Source: src.Source,
				Variants: slice.Map(src.Variants, func(idx int, v Variant) product.Variant {
					return product.Variant{
						SN:          v.SN,
						Duration:    duration.Label(v.Duration),
						ImportPrice: v.ImportPrice,
						SellPrice:   v.SellPrice,
					}
				}),
				Ctime: src.Ctime,
				Utime: src.Utime,
			}
		})
	}
	if s.Customers != nil {
		res.Customers = slice.Map(s.Customers, func(idx int, src Customer) customer.Customer {
			return customer.Customer{
				ID:         src.ID,
				SN:         src.SN,
				Name:       src.Name,
				Phone:      src.Phone,
				Email:      src.Email,
				SocialLink: src.SocialLink,
				Ctime:      src.Ctime,
				Utime:      src.Utime,
			}
		})
	}
	if s.Orders != nil {
		res.Orders = slice.Map(s.Orders, func(idx int, src Order) order.Order {
			res := order.Order{
				SN:            src.SN,
				CustomerSN:    src.CustomerSN,
				CustomerName:  src.CustomerName,
				CustomerPhone: src.CustomerPhone,
				Items: slice.Map(src.Items, func(idx int, it OrderItem) order.OrderItem {
					return order.OrderItem{
						ProductSN:   it.ProductSN,
						VariantSN:   it.VariantSN,
						Name:        it.Name,
						PriceAtSale: it.PriceAtSale,
						CostAtSale:  it.CostAtSale,
						UsageTime:   duration.Label(it.UsageTime),
					}
				}),
				TotalAmount: src.TotalAmount,
				Status:      order.OrderStatus(src.Status),
				Notes:       src.Notes,
				Ctime:       src.Ctime,
				Utime:       src.Utime,
			}
			if src.Refund != nil {
				res.Refund = &order.RefundInfo{
					RefundToCustomer:   src.Refund.RefundToCustomer,
					RefundFromSupplier: src.Refund.RefundFromSupplier,
					RefundDate:         src.Refund.RefundDate,
					Reason:             src.Refund.Reason,
				}
			}
			return res
		})
	}
	res.Users = slice.Map(s.Users, func(idx int, src User) user.User {
		return user.User{
			ID:       src.ID,
			Username: src.Username,
			Password: src.Password,
			FullName: src.FullName,
			Ctime:    src.Ctime,
			Utime:    src.Utime,
		}
	})
	return res
}
