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

package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/internal/api/repo"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/id"
	"github.com/expertly/expertly/pkg/log"
	"gorm.io/gorm"
)

var (
	ErrExpertNotFound     = errors.New(http.ExpertNotExist.Msg)
	ErrSlugTaken          = errors.New("slug is already taken")
	ErrInvalidSlug        = errors.New("slug must be lowercase letters, digits and dashes")
	ErrMemberExists       = errors.New(http.MemberExists.Msg)
	ErrMembershipNotFound = errors.New("user is not a member of this expert")
	ErrLastOwner          = errors.New("an expert must keep at least one owner")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type ExpertService struct {
	expertRepo     repo.IExpertRepository
	membershipRepo repo.IExpertMembershipRepository
	userRepo       repo.IUserRepository
}

func NewExpertService(expertRepo repo.IExpertRepository, membershipRepo repo.IExpertMembershipRepository,
	userRepo repo.IUserRepository) *ExpertService {
	return &ExpertService{
		expertRepo:     expertRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// CreateExpert creates a tenant with the caller as its owner.
func (es *ExpertService) CreateExpert(creatorUserId string, req *model.CreateExpertReq) (*model.Expert, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	if _, err := es.expertRepo.GetBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Errorw("failed to check slug", "slug", slug, "error", err)
		return nil, err
	}

	expert := &model.Expert{
		ExpertId:    id.GetUUIDWithoutDashes(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedBy:   creatorUserId,
		IsEnabled:   1,
	}
	if err := es.expertRepo.CreateExpert(expert); err != nil {
		log.Errorw("failed to create expert", "slug", slug, "creator", creatorUserId, "error", err)
		return nil, err
	}

	return expert, nil
}

func (es *ExpertService) GetExpert(expertId string) (*model.Expert, error) {
	expert, err := es.expertRepo.GetByExpertId(expertId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpertNotFound
		}
		return nil, err
	}
	return expert, nil
}

func (es *ExpertService) GetExpertBySlug(slug string) (*model.Expert, error) {
	expert, err := es.expertRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpertNotFound
		}
		return nil, err
	}
	return expert, nil
}

func (es *ExpertService) GetExpertList(pageNum, pageSize int) ([]model.Expert, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return es.expertRepo.GetExpertList((pageNum-1)*pageSize, pageSize)
}

func (es *ExpertService) UpdateExpert(expertId string, req *model.UpdateExpertReq) (*model.Expert, error) {
	expert, err := es.GetExpert(expertId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		expert.Name = *req.Name
	}
	if req.Description != nil {
		expert.Description = *req.Description
	}

	if err := es.expertRepo.UpdateExpert(expertId, expert); err != nil {
		log.Errorw("failed to update expert", "expertId", expertId, "error", err)
		return nil, err
	}
	return expert, nil
}

func (es *ExpertService) DeleteExpert(expertId string) error {
	if _, err := es.GetExpert(expertId); err != nil {
		return err
	}
	if err := es.expertRepo.DeleteExpert(expertId); err != nil {
		log.Errorw("failed to delete expert", "expertId", expertId, "error", err)
		return err
	}
	return nil
}

// AddMember grants a user a role inside the tenant. A user holds at
// most one membership per tenant.
func (es *ExpertService) AddMember(expertId, grantedBy string, req *model.AddMemberReq) (*model.ExpertMembership, error) {
	if !contract.ExpertMemberRole(req.Role).Known() {
		return nil, ErrUnknownRole
	}
	if _, err := es.GetExpert(expertId); err != nil {
		return nil, err
	}
	if _, err := es.userRepo.GetByUserId(req.UserId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := es.membershipRepo.GetMembership(req.UserId, expertId); err == nil {
		return nil, ErrMemberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Errorw("failed to check membership", "userId", req.UserId, "expertId", expertId, "error", err)
		return nil, err
	}

	membership := &model.ExpertMembership{
		MembershipId: id.GetUUIDWithoutDashes(),
		UserId:       req.UserId,
		ExpertId:     expertId,
		Role:         req.Role,
		GrantedBy:    &grantedBy,
	}
	if err := es.membershipRepo.CreateMembership(membership); err != nil {
		log.Errorw("failed to create membership", "userId", req.UserId, "expertId", expertId, "error", err)
		return nil, err
	}

	return membership, nil
}

// ChangeMemberRole updates a member's tenant role. Demoting the last
// owner is refused so the tenant always has one.
func (es *ExpertService) ChangeMemberRole(expertId, userId, role string) error {
	if !contract.ExpertMemberRole(role).Known() {
		return ErrUnknownRole
	}

	membership, err := es.membershipRepo.GetMembership(userId, expertId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return err
	}

	if membership.Role == string(contract.ExpertRoleOwner) && role != string(contract.ExpertRoleOwner) {
		if err := es.ensureNotLastOwner(expertId); err != nil {
			return err
		}
	}

	if err := es.membershipRepo.UpdateMembershipRole(userId, expertId, role); err != nil {
		log.Errorw("failed to change member role", "userId", userId, "expertId", expertId, "role", role, "error", err)
		return err
	}
	return nil
}

// RemoveMember revokes a user's membership. The last owner cannot be
// removed.
func (es *ExpertService) RemoveMember(expertId, userId string) error {
	membership, err := es.membershipRepo.GetMembership(userId, expertId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return err
	}

	if membership.Role == string(contract.ExpertRoleOwner) {
		if err := es.ensureNotLastOwner(expertId); err != nil {
			return err
		}
	}

	if err := es.membershipRepo.DeleteMembership(userId, expertId); err != nil {
		log.Errorw("failed to remove member", "userId", userId, "expertId", expertId, "error", err)
		return err
	}
	return nil
}

func (es *ExpertService) ListMembers(expertId string, pageNum, pageSize int) ([]model.ExpertMembership, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return es.membershipRepo.ListByExpert(expertId, (pageNum-1)*pageSize, pageSize)
}

// ListUserMemberships returns the tenants the user belongs to.
func (es *ExpertService) ListUserMemberships(userId string) ([]model.ExpertMembership, error) {
	return es.membershipRepo.ListByUser(userId)
}

func (es *ExpertService) ensureNotLastOwner(expertId string) error {
	owners, err := es.membershipRepo.CountByRole(expertId, string(contract.ExpertRoleOwner))
	if err != nil {
		log.Errorw("failed to count owners", "expertId", expertId, "error", err)
		return err
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}
