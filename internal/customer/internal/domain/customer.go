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

package domain

import "strings"

type Customer struct {
	ID    int64
	SN    string
	Name  string
	Phone string
	Email string
	// SocialLink 社交主页链接，例如 Facebook
	SocialLink string
	Ctime      int64
	Utime      int64
}

// Identified 姓名和手机号都是必须的
func (c Customer) Identified() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Phone) != ""
}
