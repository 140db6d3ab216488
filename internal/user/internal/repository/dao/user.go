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
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrDataNotFound = gorm.ErrRecordNotFound

// ErrUserDuplicate 用户名已经存在
var ErrUserDuplicate = errors.New("用户名已经存在")

//go:generate mockgen -source=./user.go -package=daomocks -destination=mocks/user.mock.go UserDAO
type UserDAO interface {
	Insert(ctx context.Context, u User) (int64, error)
	FindById(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	ListAll(ctx context.Context) ([]User, error)
	ReplaceAll(ctx context.Context, us []User) error
}

type GORMUserDAO struct {
	db *egorm.Component
}

func NewGORMUserDAO(db *egorm.Component) UserDAO {
	return &GORMUserDAO{
		db: db,
	}
}

func (ud *GORMUserDAO) Insert(ctx context.Context, u User) (int64, error) {
	now := time.Now().UnixMilli()
	u.Ctime = now
	u.Utime = now
	err := ud.db.WithContext(ctx).Create(&u).Error
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return 0, ErrUserDuplicate
		}
	}
	return u.Id, err
}

func (ud *GORMUserDAO) FindById(ctx context.Context, id int64) (User, error) {
	var u User
	err := ud.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}

func (ud *GORMUserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := ud.db.WithContext(ctx).First(&u, "username = ?", username).Error
	return u, err
}

func (ud *GORMUserDAO) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	return ud.update(ctx, id, map[string]any{"full_name": fullName})
}

func (ud *GORMUserDAO) UpdatePassword(ctx context.Context, id int64, password string) error {
	return ud.update(ctx, id, map[string]any{"password": password})
}

func (ud *GORMUserDAO) update(ctx context.Context, id int64, fields map[string]any) error {
	fields["utime"] = time.Now().UnixMilli()
	res := ud.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDataNotFound
	}
	return nil
}

func (ud *GORMUserDAO) ListAll(ctx context.Context) ([]User, error) {
	var us []User
	err := ud.db.WithContext(ctx).Order("id ASC").Find(&us).Error
	return us, err
}

func (ud *GORMUserDAO) ReplaceAll(ctx context.Context, us []User) error {
	return ud.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&User{}).Error; err != nil {
			return err
		}
		if len(us) == 0 {
			return nil
		}
		return tx.CreateInBatches(us, 100).Error
	})
}

type User struct {
	Id       int64  `gorm:"primaryKey,autoIncrement"`
	Username string `gorm:"type:varchar(128);not null;uniqueIndex:uniq_username"`
	// Password bcrypt 哈希
	Password string `gorm:"type:varchar(256);not null"`
	FullName string `gorm:"type:varchar(255);not null;default:''"`
	// 创建时间
	Ctime int64
	// 更新时间
	Utime int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&User{})
}
