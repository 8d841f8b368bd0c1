// Copyright 2025 Expertly Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "time"

// Expert is a tenant: an expert profile/organization inside which users
// hold scoped roles independent of their platform role.
type Expert struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ExpertId    string    `gorm:"column:expert_id;not null;uniqueIndex" json:"expertId"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedBy   string    `gorm:"column:created_by;not null;index" json:"createdBy"`
	IsEnabled   int       `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`
	CreateTime  time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime  time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (e *Expert) TableName() string {
	return "t_expert"
}

// CreateExpertReq request for creating an expert tenant
type CreateExpertReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// UpdateExpertReq request for updating an expert tenant
type UpdateExpertReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
