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

type Customer struct {
	SN         string `json:"sn,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	SocialLink string `json:"socialLink,omitempty"`
	Ctime      int64  `json:"ctime,omitempty"`
}

type SaveReq struct {
	Customer Customer `json:"customer"`
}

type ListReq struct {
	Search string `json:"search,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListResp struct {
	Total     int64      `json:"total"`
	Customers []Customer `json:"customers"`
}

type SNReq struct {
	SN string `json:"sn"`
}
