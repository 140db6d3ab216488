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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrOrderStatusChanged 取消的时候订单已经不是已完成状态
	ErrOrderStatusChanged = errors.New("订单状态已变更")
)

type OrderDAO interface {
	Create(ctx context.Context, o Order, items []OrderItem) (int64, error)
	FindBySN(ctx context.Context, sn string) (Order, []OrderItem, error)
	// Cancel 只有已完成的订单才会被更新，状态和退款信息一起写入
	Cancel(ctx context.Context, sn string, refund Refund) error
	DeleteBySN(ctx context.Context, sn string) error
	CountByCustomer(ctx context.Context, customerSN string) (int64, error)
	ListByCustomer(ctx context.Context, customerSN string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	FindItemsByOrderIDs(ctx context.Context, oids []int64) ([]OrderItem, error)
	ReplaceAll(ctx context.Context, os []Order, items []OrderItem) error
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (d *OrderGORMDAO) Create(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	now := time.Now().UnixMilli()
	if o.Ctime == 0 {
		o.Ctime = now
	}
	o.Utime = now
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime = now
			items[i].Utime = now
		}
		return tx.Create(&items).Error
	})
	return o.Id, err
}

func (d *OrderGORMDAO) FindBySN(ctx context.Context, sn string) (Order, []OrderItem, error) {
	var o Order
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&o).Error
	if err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	err = d.db.WithContext(ctx).Where("order_id = ?", o.Id).Order("id ASC").Find(&items).Error
	return o, items, err
}

func (d *OrderGORMDAO) Cancel(ctx context.Context, sn string, refund Refund) error {
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND status = ?", sn, StatusCompleted).
		Updates(map[string]any{
			"status":               StatusCancelled,
			"refund_to_customer":   refund.RefundToCustomer,
			"refund_from_supplier": refund.RefundFromSupplier,
			"refund_date":          refund.RefundDate,
			"refund_reason":        refund.RefundReason,
			"utime":                time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderStatusChanged
	}
	return nil
}

func (d *OrderGORMDAO) DeleteBySN(ctx context.Context, sn string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.Where("sn = ?", sn).First(&o).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.Id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", o.Id).Delete(&Order{}).Error
	})
}

func (d *OrderGORMDAO) CountByCustomer(ctx context.Context, customerSN string) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Order{}).Where("customer_sn = ?", customerSN).Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) ListByCustomer(ctx context.Context, customerSN string) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).Where("customer_sn = ?", customerSN).Order("ctime DESC").Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) ListAll(ctx context.Context) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).Order("ctime DESC").Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindItemsByOrderIDs(ctx context.Context, oids []int64) ([]OrderItem, error) {
	var res []OrderItem
	if len(oids) == 0 {
		return res, nil
	}
	err := d.db.WithContext(ctx).Where("order_id IN ?", oids).Order("id ASC").Find(&res).Error
	return res, err
}

// ReplaceAll 删除全部订单后重新写入，items 的 OrderId 对应 os 里面的 Id
func (d *OrderGORMDAO) ReplaceAll(ctx context.Context, os []Order, items []OrderItem) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&Order{}).Error; err != nil {
			return err
		}
		if len(os) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(os, 100).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 100).Error
	})
}

const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Order struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN            string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_order_sn;comment:订单编号"`
	CustomerSN    string `gorm:"type:varchar(64);not null;index:idx_customer_sn;comment:客户编号"`
	CustomerName  string `gorm:"type:varchar(255);not null;comment:下单时的客户姓名"`
	CustomerPhone string `gorm:"type:varchar(32);not null;comment:下单时的客户手机号"`
	TotalAmount   int64  `gorm:"not null;comment:订单总价"`
	Status        string `gorm:"type:varchar(16);not null;default:'completed';comment:订单状态 completed/pending/cancelled"`
	Notes         string `gorm:"type:varchar(1024);not null;default:'';comment:备注"`
	Refund        `gorm:"embedded"`
	Ctime         int64 `gorm:"index:idx_ctime"`
	Utime         int64
}

// Refund 取消订单时写入
type Refund struct {
	RefundToCustomer   int64  `gorm:"not null;default:0;comment:退给客户的金额"`
	RefundFromSupplier int64  `gorm:"not null;default:0;comment:从上游追回的金额"`
	RefundDate         int64  `gorm:"not null;default:0;comment:退款时间"`
	RefundReason       string `gorm:"type:varchar(1024);not null;default:'';comment:取消原因"`
}

type OrderItem struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId     int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductSN   string `gorm:"type:varchar(64);not null;comment:商品编号"`
	VariantSN   string `gorm:"type:varchar(64);not null;comment:规格编号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	PriceAtSale int64  `gorm:"not null;comment:售价快照"`
	CostAtSale  int64  `gorm:"not null;comment:进货价快照"`
	UsageTime   string `gorm:"type:varchar(32);not null;default:'';comment:使用时长"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{})
}
