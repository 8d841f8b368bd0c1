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

package repo

import (
	"context"
	"errors"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/database"
	"gorm.io/gorm"
)

type IExpertMembershipRepository interface {
	// MemberRole satisfies the expert guard's membership lookup: found
	// is false when no row exists for the pair, err only on store
	// failure.
	MemberRole(ctx context.Context, userId, expertId string) (contract.ExpertMemberRole, bool, error)

	GetMembership(userId, expertId string) (*model.ExpertMembership, error)
	CreateMembership(membership *model.ExpertMembership) error
	UpdateMembershipRole(userId, expertId, role string) error
	DeleteMembership(userId, expertId string) error
	CountByRole(expertId, role string) (int64, error)
	ListByExpert(expertId string, offset, pageSize int) ([]model.ExpertMembership, int64, error)
	ListByUser(userId string) ([]model.ExpertMembership, error)
}

type ExpertMembershipRepo struct {
	db              database.IDatabase
	membershipModel *model.ExpertMembership
}

func NewExpertMembershipRepo(db database.IDatabase) IExpertMembershipRepository {
	return &ExpertMembershipRepo{
		db:              db,
		membershipModel: &model.ExpertMembership{},
	}
}

func (mr *ExpertMembershipRepo) MemberRole(ctx context.Context, userId, expertId string) (contract.ExpertMemberRole, bool, error) {
	var membership model.ExpertMembership
	err := mr.db.Database().WithContext(ctx).
		Select("role").
		Where("user_id = ? AND expert_id = ?", userId, expertId).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return membership.MemberRole(), true, nil
}

func (mr *ExpertMembershipRepo) GetMembership(userId, expertId string) (*model.ExpertMembership, error) {
	var membership model.ExpertMembership
	err := mr.db.Database().
		Where("user_id = ? AND expert_id = ?", userId, expertId).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (mr *ExpertMembershipRepo) CreateMembership(membership *model.ExpertMembership) error {
	return mr.db.Database().Create(membership).Error
}

func (mr *ExpertMembershipRepo) UpdateMembershipRole(userId, expertId, role string) error {
	return mr.db.Database().Table(mr.membershipModel.TableName()).
		Where("user_id = ? AND expert_id = ?", userId, expertId).
		Update("role", role).Error
}

func (mr *ExpertMembershipRepo) DeleteMembership(userId, expertId string) error {
	return mr.db.Database().
		Where("user_id = ? AND expert_id = ?", userId, expertId).
		Delete(&model.ExpertMembership{}).Error
}

func (mr *ExpertMembershipRepo) CountByRole(expertId, role string) (int64, error) {
	var count int64
	err := mr.db.Database().Table(mr.membershipModel.TableName()).
		Where("expert_id = ? AND role = ?", expertId, role).
		Count(&count).Error
	return count, err
}

func (mr *ExpertMembershipRepo) ListByExpert(expertId string, offset, pageSize int) ([]model.ExpertMembership, int64, error) {
	var (
		memberships []model.ExpertMembership
		count       int64
	)

	db := mr.db.Database().Table(mr.membershipModel.TableName()).Where("expert_id = ?", expertId)
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("create_time ASC").Offset(offset).Limit(pageSize).Find(&memberships).Error
	return memberships, count, err
}

func (mr *ExpertMembershipRepo) ListByUser(userId string) ([]model.ExpertMembership, error) {
	var memberships []model.ExpertMembership
	err := mr.db.Database().Where("user_id = ?", userId).Find(&memberships).Error
	return memberships, err
}
