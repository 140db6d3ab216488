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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/resale/internal/backup/internal/domain"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/ecodeclub/resale/internal/user"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidSnapshot = errors.New("备份文件缺少商品、客户或订单数据")

//go:generate mockgen -source=./service.go -package=backupmocks -destination=../../mocks/backup.mock.go Service
type Service interface {
	Export(ctx context.Context) (domain.Snapshot, error)
	// Restore 覆盖式恢复，每一类数据各自在一个事务里面替换
	Restore(ctx context.Context, s domain.Snapshot) error
}

type service struct {
	productSvc  product.Service
	customerSvc customer.Service
	orderSvc    order.Service
	userSvc     user.UserService
	logger      *elog.Component
}

func NewService(productSvc product.Service,
	customerSvc customer.Service,
	orderSvc order.Service,
	userSvc user.UserService) Service {
	return &service{
		productSvc:  productSvc,
		customerSvc: customerSvc,
		orderSvc:    orderSvc,
		userSvc:     userSvc,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Export(ctx context.Context) (domain.Snapshot, error) {
	var (
		eg  errgroup.Group
		res domain.Snapshot
	)
	eg.Go(func() error {
		var err error
		res.Products, err = s.productSvc.Export(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		res.Customers, err = s.customerSvc.Export(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		res.Orders, err = s.orderSvc.Export(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		res.Users, err = s.userSvc.Export(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.Snapshot{}, err
	}
	res.Timestamp = time.Now().UnixMilli()
	return res, nil
}

func (s *service) Restore(ctx context.Context, snapshot domain.Snapshot) error {
	if !snapshot.Complete() {
		return ErrInvalidSnapshot
	}
	if err := s.productSvc.Replace(ctx, snapshot.Products); err != nil {
		return fmt.Errorf("恢复商品失败: %w", err)
	}
	if err := s.customerSvc.Replace(ctx, snapshot.Customers); err != nil {
		return fmt.Errorf("恢复客户失败: %w", err)
	}
	if err := s.orderSvc.Replace(ctx, snapshot.Orders); err != nil {
		return fmt.Errorf("恢复订单失败: %w", err)
	}
	if err := s.userSvc.Replace(ctx, snapshot.Users); err != nil {
		return fmt.Errorf("恢复用户失败: %w", err)
	}
	s.logger.Info("恢复备份",
		elog.Int("products", len(snapshot.Products)),
		elog.Int("customers", len(snapshot.Customers)),
		elog.Int("orders", len(snapshot.Orders)),
		elog.Int("users", len(snapshot.Users)),
		elog.Int64("timestamp", snapshot.Timestamp))
	return nil
}
