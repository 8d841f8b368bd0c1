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
	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/database"
	"github.com/expertly/expertly/pkg/id"
	"gorm.io/gorm"
)

type IExpertRepository interface {
	CreateExpert(expert *model.Expert) error
	UpdateExpert(expertId string, expert *model.Expert) error
	GetByExpertId(expertId string) (*model.Expert, error)
	GetBySlug(slug string) (*model.Expert, error)
	GetExpertList(offset, pageSize int) ([]model.Expert, int64, error)
	DeleteExpert(expertId string) error
}

type ExpertRepo struct {
	db          database.IDatabase
	expertModel *model.Expert
}

func NewExpertRepo(db database.IDatabase) IExpertRepository {
	return &ExpertRepo{
		db:          db,
		expertModel: &model.Expert{},
	}
}

// CreateExpert inserts the tenant and its creator's owner membership in
// one transaction so a tenant can never exist without an owner.
func (er *ExpertRepo) CreateExpert(expert *model.Expert) error {
	return er.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expert).Error; err != nil {
			return err
		}
		membership := &model.ExpertMembership{
			MembershipId: id.GetUUIDWithoutDashes(),
			UserId:       expert.CreatedBy,
			ExpertId:     expert.ExpertId,
			Role:         string(contract.ExpertRoleOwner),
		}
		return tx.Create(membership).Error
	})
}

func (er *ExpertRepo) UpdateExpert(expertId string, expert *model.Expert) error {
	return er.db.Database().Table(er.expertModel.TableName()).
		Where("expert_id = ?", expertId).
		Omit("expert_id", "slug", "created_by", "create_time").
		Updates(expert).Error
}

func (er *ExpertRepo) GetByExpertId(expertId string) (*model.Expert, error) {
	var expert model.Expert
	err := er.db.Database().Where("expert_id = ?", expertId).First(&expert).Error
	if err != nil {
		return nil, err
	}
	return &expert, nil
}

func (er *ExpertRepo) GetBySlug(slug string) (*model.Expert, error) {
	var expert model.Expert
	err := er.db.Database().Where("slug = ?", slug).First(&expert).Error
	if err != nil {
		return nil, err
	}
	return &expert, nil
}

func (er *ExpertRepo) GetExpertList(offset, pageSize int) ([]model.Expert, int64, error) {
	var (
		experts []model.Expert
		count   int64
	)

	db := er.db.Database().Table(er.expertModel.TableName()).Where("is_enabled = ?", 1)
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("create_time DESC").Offset(offset).Limit(pageSize).Find(&experts).Error
	return experts, count, err
}

// DeleteExpert removes the tenant and all of its memberships.
func (er *ExpertRepo) DeleteExpert(expertId string) error {
	return er.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expert_id = ?", expertId).Delete(&model.ExpertMembership{}).Error; err != nil {
			return err
		}
		return tx.Where("expert_id = ?", expertId).Delete(&model.Expert{}).Error
	})
}
