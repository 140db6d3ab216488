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
	"strings"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrDuplicatePhone 手机号是客户的唯一标识
	ErrDuplicatePhone = errors.New("手机号已存在")
)

type CustomerDAO interface {
	Insert(ctx context.Context, c Customer) (int64, error)
	// Update 按照 SN 更新资料
	Update(ctx context.Context, c Customer) error
	FindBySN(ctx context.Context, sn string) (Customer, error)
	FindByPhone(ctx context.Context, phone string) (Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]Customer, error)
	Count(ctx context.Context, search string) (int64, error)
	DeleteBySN(ctx context.Context, sn string) error
	ListAll(ctx context.Context) ([]Customer, error)
	ReplaceAll(ctx context.Context, cs []Customer) error
}

type CustomerGORMDAO struct {
	db *egorm.Component
}

func NewCustomerGORMDAO(db *egorm.Component) CustomerDAO {
	return &CustomerGORMDAO{db: db}
}

func (d *CustomerGORMDAO) Insert(ctx context.Context, c Customer) (int64, error) {
	now := time.Now().UnixMilli()
	if c.Ctime == 0 {
		c.Ctime = now
	}
	c.Utime = now
	err := d.db.WithContext(ctx).Create(&c).Error
	return c.Id, d.translate(err)
}

func (d *CustomerGORMDAO) Update(ctx context.Context, c Customer) error {
	res := d.db.WithContext(ctx).Model(&Customer{}).
		Where("sn = ?", c.SN).
		Updates(map[string]any{
			"name":        c.Name,
			"phone":       c.Phone,
			"email":       c.Email,
			"social_link": c.SocialLink,
			"utime":       time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return d.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (d *CustomerGORMDAO) translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return ErrDuplicatePhone
		}
	}
	return err
}

func (d *CustomerGORMDAO) FindBySN(ctx context.Context, sn string) (Customer, error) {
	var res Customer
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *CustomerGORMDAO) FindByPhone(ctx context.Context, phone string) (Customer, error) {
	var res Customer
	err := d.db.WithContext(ctx).Where("phone = ?", phone).First(&res).Error
	return res, err
}

func (d *CustomerGORMDAO) List(ctx context.Context, search string, offset, limit int) ([]Customer, error) {
	var res []Customer
	err := d.searchQuery(ctx, search).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *CustomerGORMDAO) Count(ctx context.Context, search string) (int64, error) {
	var res int64
	err := d.searchQuery(ctx, search).Model(&Customer{}).Count(&res).Error
	return res, err
}

// searchQuery 姓名、手机号、邮箱模糊匹配，大小写由字段的 collation 决定
func (d *CustomerGORMDAO) searchQuery(ctx context.Context, search string) *gorm.DB {
	db := d.db.WithContext(ctx)
	if search == "" {
		return db
	}
	like := "%" + likeEscaper.Replace(search) + "%"
	return db.Where("name LIKE ? ESCAPE '!' OR phone LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!'", like, like, like)
}

// likeEscaper 搜索词里面的 % 和 _ 按照字面匹配
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (d *CustomerGORMDAO) DeleteBySN(ctx context.Context, sn string) error {
	res := d.db.WithContext(ctx).Where("sn = ?", sn).Delete(&Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (d *CustomerGORMDAO) ListAll(ctx context.Context) ([]Customer, error) {
	var res []Customer
	err := d.db.WithContext(ctx).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *CustomerGORMDAO) ReplaceAll(ctx context.Context, cs []Customer) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Customer{}).Error; err != nil {
			return err
		}
		if len(cs) == 0 {
			return nil
		}
		return tx.CreateInBatches(cs, 100).Error
	})
}

type Customer struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:客户自增ID"`
	SN         string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_customer_sn;comment:客户编号"`
	Name       string `gorm:"type:varchar(255);not null;comment:姓名"`
	Phone      string `gorm:"type:varchar(32);not null;uniqueIndex:uniq_customer_phone;comment:手机号"`
	Email      string `gorm:"type:varchar(255);not null;default:'';comment:邮箱"`
	SocialLink string `gorm:"type:varchar(512);not null;default:'';comment:社交主页链接"`
	Ctime      int64
	Utime      int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Customer{})
}
