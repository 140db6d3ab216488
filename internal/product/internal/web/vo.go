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

type Product struct {
	SN       string    `json:"sn,omitempty"`
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Variants []Variant `json:"variants"`
	Ctime    int64     `json:"ctime,omitempty"`
	Utime    int64     `json:"utime,omitempty"`
}

type Variant struct {
	SN          string `json:"sn,omitempty"`
	Duration    string `json:"duration"`
	ImportPrice int64  `json:"importPrice"`
	SellPrice   int64  `json:"sellPrice"`
}

type SaveReq struct {
	Product Product `json:"product"`
}

type SNReq struct {
	SN string `json:"sn"`
}

type ListResp struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}
