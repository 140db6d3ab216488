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

var ErrRecordNotFound = gorm.ErrRecordNotFound

type ProductDAO interface {
	// Save 按照 SN 新建或者更新商品，并且整体替换它的规格
	Save(ctx context.Context, p Product, variants []ProductVariant) (int64, error)
	FindBySN(ctx context.Context, sn string) (Product, error)
	FindVariantsByProductIDs(ctx context.Context, pids []int64) ([]ProductVariant, error)
	List(ctx context.Context) ([]Product, error)
	ListVariants(ctx context.Context) ([]ProductVariant, error)
	DeleteBySN(ctx context.Context, sn string) error
	// ReplaceAll 清空后整体写入，恢复备份使用
	ReplaceAll(ctx context.Context, ps []Product, variants []ProductVariant) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) Save(ctx context.Context, p Product, variants []ProductVariant) (int64, error) {
	now := time.Now().UnixMilli()
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old Product
		err := tx.Where("sn = ?", p.SN).First(&old).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p.Ctime, p.Utime = now, now
			if err = tx.Create(&p).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			p.Id = old.Id
			err = tx.Model(&Product{}).Where("id = ?", old.Id).Updates(map[string]any{
				"name":   p.Name,
				"source": p.Source,
				"utime":  now,
			}).Error
			if err != nil {
				return err
			}
		}
		if err = tx.Where("product_id = ?", p.Id).Delete(&ProductVariant{}).Error; err != nil {
			return err
		}
		for i := range variants {
			variants[i].Id = 0
			variants[i].ProductId = p.Id
			variants[i].Ctime, variants[i].Utime = now, now
		}
		if len(variants) == 0 {
			return nil
		}
		return tx.Create(&variants).Error
	})
	return p.Id, err
}

func (d *ProductGORMDAO) FindBySN(ctx context.Context, sn string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariantsByProductIDs(ctx context.Context, pids []int64) ([]ProductVariant, error) {
	var res []ProductVariant
	if len(pids) == 0 {
		return res, nil
	}
	err := d.db.WithContext(ctx).Where("product_id IN ?", pids).
		Order("id ASC").Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) List(ctx context.Context) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).Order("ctime DESC").Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) ListVariants(ctx context.Context) ([]ProductVariant, error) {
	var res []ProductVariant
	err := d.db.WithContext(ctx).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) DeleteBySN(ctx context.Context, sn string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		err := tx.Where("sn = ?", sn).First(&p).Error
		if err != nil {
			return err
		}
		if err = tx.Where("product_id = ?", p.Id).Delete(&ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", p.Id).Delete(&Product{}).Error
	})
}

func (d *ProductGORMDAO) ReplaceAll(ctx context.Context, ps []Product, variants []ProductVariant) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&Product{}).Error; err != nil {
			return err
		}
		if len(ps) > 0 {
			if err := tx.CreateInBatches(ps, batchSize).Error; err != nil {
				return err
			}
		}
		if len(variants) > 0 {
			return tx.CreateInBatches(variants, batchSize).Error
		}
		return nil
	})
}

const batchSize = 100

type Product struct {
	Id     int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SN     string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_product_sn;comment:商品编号"`
	Name   string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Source string `gorm:"type:varchar(255);not null;default:'';comment:进货渠道"`
	Ctime  int64
	Utime  int64
}

type ProductVariant struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:规格自增ID"`
	SN          string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_product_variant_sn;comment:规格编号"`
	ProductId   int64  `gorm:"not null;index:idx_product_id;comment:商品自增ID"`
	Duration    string `gorm:"type:varchar(64);not null;comment:使用时长, 例如 1 tháng"`
	ImportPrice int64  `gorm:"not null;comment:进货价"`
	SellPrice   int64  `gorm:"not null;comment:售价"`
	Ctime       int64
	Utime       int64
}
