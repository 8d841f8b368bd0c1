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

import (
	"time"

	"github.com/expertly/expertly/pkg/contract"
)

// ExpertMembership binds a user to an expert tenant with a scoped role.
// The composite unique index enforces at most one row per
// (user_id, expert_id) pair.
type ExpertMembership struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MembershipId string    `gorm:"column:membership_id;not null;uniqueIndex" json:"membershipId"`
	UserId       string    `gorm:"column:user_id;not null;uniqueIndex:uniq_user_expert;index" json:"userId"`
	ExpertId     string    `gorm:"column:expert_id;not null;uniqueIndex:uniq_user_expert;index" json:"expertId"`
	Role         string    `gorm:"column:role;not null" json:"role"`
	GrantedBy    *string   `gorm:"column:granted_by" json:"grantedBy"`
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime   time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (ExpertMembership) TableName() string {
	return "t_expert_membership"
}

// MemberRole returns the stored role as the contract enum.
func (m *ExpertMembership) MemberRole() contract.ExpertMemberRole {
	return contract.ExpertMemberRole(m.Role)
}

// AddMemberReq request for adding a member to an expert tenant
type AddMemberReq struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
}

// ChangeMemberRoleReq request for changing a member's tenant role
type ChangeMemberRoleReq struct {
	Role string `json:"role"`
}
