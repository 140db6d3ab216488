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

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/resale/internal/customer/internal/domain"
)

//go:generate mockgen -source=./customer.go -package=cachemocks -destination=mocks/customer.mock.go CustomerCache
type CustomerCache interface {
	Get(ctx context.Context, sn string) (domain.Customer, error)
	Set(ctx context.Context, c domain.Customer) error
	Delete(ctx context.Context, sn string) error
}

type CustomerECache struct {
	cache      ecache.Cache
	expiration time.Duration
}

func NewCustomerECache(c ecache.Cache) CustomerCache {
	return &CustomerECache{
		cache: &ecache.NamespaceCache{
			Namespace: "customer:",
			C:         c,
		},
		expiration: time.Minute * 15,
	}
}

func (c *CustomerECache) Get(ctx context.Context, sn string) (domain.Customer, error) {
	var res domain.Customer
	err := c.cache.Get(ctx, c.key(sn)).JSONScan(&res)
	return res, err
}

func (c *CustomerECache) Set(ctx context.Context, cu domain.Customer) error {
	data, err := json.Marshal(cu)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.key(cu.SN), data, c.expiration)
}

func (c *CustomerECache) Delete(ctx context.Context, sn string) error {
	_, err := c.cache.Delete(ctx, c.key(sn))
	return err
}

func (c *CustomerECache) key(sn string) string {
	return "info:" + sn
}
