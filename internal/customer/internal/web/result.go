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
	"github.com/ecodeclub/resale/internal/customer/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	invalidCustomerResult = ginx.Result{
		Code: errs.InvalidCustomerError.Code,
		Msg:  errs.InvalidCustomerError.Msg,
	}
	duplicatePhoneResult = ginx.Result{
		Code: errs.DuplicatePhoneError.Code,
		Msg:  errs.DuplicatePhoneError.Msg,
	}
	customerNotFoundResult = ginx.Result{
		Code: errs.CustomerNotFoundError.Code,
		Msg:  errs.CustomerNotFoundError.Msg,
	}
)
