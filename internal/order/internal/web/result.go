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
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/resale/internal/order/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	emptyCartResult = ginx.Result{
		Code: errs.EmptyCartError.Code,
		Msg:  errs.EmptyCartError.Msg,
	}
	missingCustomerResult = ginx.Result{
		Code: errs.MissingCustomerError.Code,
		Msg:  errs.MissingCustomerError.Msg,
	}
	invalidCartLineResult = ginx.Result{
		Code: errs.InvalidCartLineError.Code,
		Msg:  errs.InvalidCartLineError.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFoundError.Code,
		Msg:  errs.OrderNotFoundError.Msg,
	}
	orderNotCancelableResult = ginx.Result{
		Code: errs.OrderNotCancelableError.Code,
		Msg:  errs.OrderNotCancelableError.Msg,
	}
	invalidRefundResult = ginx.Result{
		Code: errs.InvalidRefundError.Code,
		Msg:  errs.InvalidRefundError.Msg,
	}
	invalidQueryResult = ginx.Result{
		Code: errs.InvalidQueryError.Code,
		Msg:  errs.InvalidQueryError.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequestError.Code,
		Msg:  errs.DuplicateRequestError.Msg,
	}
)
