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

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Item struct {
	Id   int64
	Name string
}

func TestGormTracingPlugin(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormTracingPlugin().Initialize(db))

	mock.ExpectQuery("SELECT .* FROM `items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "netflix"))
	mock.ExpectExec("DELETE FROM `items`").
		WillReturnError(errors.New("mock db error"))

	var items []Item
	err = db.WithContext(context.Background()).Find(&items).Error
	require.NoError(t, err)
	assert.Len(t, items, 1)

	err = db.WithContext(context.Background()).Where("id = ?", 1).Delete(&Item{}).Error
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "items SELECT", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, "items DELETE", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
