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

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository/dao"
)

// ErrInterviewNotFound 记录不存在，或者不属于当前用户。
// 两种情况不做区分，避免泄露记录是否存在
var ErrInterviewNotFound = errors.New("面试记录不存在")

//go:generate mockgen -source=./completed.go -package=repomocks -destination=mocks/completed.mock.go CompletedInterviewRepository
type CompletedInterviewRepository interface {
	Create(ctx context.Context, c domain.CompletedInterview) (int64, error)
	ListByUid(ctx context.Context, uid int64, limit int) ([]domain.CompletedInterview, error)
	GetById(ctx context.Context, id, uid int64) (domain.CompletedInterview, error)
}

type completedInterviewRepository struct {
	dao dao.CompletedInterviewDAO
}

func NewCompletedInterviewRepository(d dao.CompletedInterviewDAO) CompletedInterviewRepository {
	return &completedInterviewRepository{dao: d}
}

func (r *completedInterviewRepository) Create(ctx context.Context, c domain.CompletedInterview) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(c))
}

func (r *completedInterviewRepository) ListByUid(ctx context.Context, uid int64, limit int) ([]domain.CompletedInterview, error) {
	entities, err := r.dao.FindByUid(ctx, uid, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.CompletedInterview) domain.CompletedInterview {
		return r.toDomain(src)
	}), nil
}

func (r *completedInterviewRepository) GetById(ctx context.Context, id, uid int64) (domain.CompletedInterview, error) {
	entity, err := r.dao.FindById(ctx, id, uid)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.CompletedInterview{}, ErrInterviewNotFound
	}
	if err != nil {
		return domain.CompletedInterview{}, err
	}
	return r.toDomain(entity), nil
}

func (r *completedInterviewRepository) toEntity(c domain.CompletedInterview) dao.CompletedInterview {
	return dao.CompletedInterview{
		Id:              c.Id,
		Uid:             c.Uid,
		Sid:             c.Sid,
		CandidateName:   c.CandidateName,
		TargetRole:      c.TargetRole,
		ExperienceLevel: c.ExperienceLevel,
		TechStack: sqlx.JsonColumn[[]string]{
			Valid: true,
			Val:   c.TechStack,
		},
		TotalScore: c.TotalScore,
		CategoryScores: sqlx.JsonColumn[[]domain.CategoryScore]{
			Valid: true,
			Val:   c.CategoryScores,
		},
		Strengths: sqlx.JsonColumn[[]string]{
			Valid: true,
			Val:   c.Strengths,
		},
		AreasForImprovement: sqlx.JsonColumn[[]string]{
			Valid: true,
			Val:   c.AreasForImprovement,
		},
		FinalAssessment: c.FinalAssessment,
		ConversationHistory: sqlx.JsonColumn[[]domain.Message]{
			Valid: true,
			Val:   c.ConversationHistory,
		},
		Duration:    c.Duration,
		CompletedAt: c.CompletedAt,
	}
}

func (r *completedInterviewRepository) toDomain(c dao.CompletedInterview) domain.CompletedInterview {
	return domain.CompletedInterview{
		Id:                  c.Id,
		Uid:                 c.Uid,
		Sid:                 c.Sid,
		CandidateName:       c.CandidateName,
		TargetRole:          c.TargetRole,
		ExperienceLevel:     c.ExperienceLevel,
		TechStack:           c.TechStack.Val,
		TotalScore:          c.TotalScore,
		CategoryScores:      c.CategoryScores.Val,
		Strengths:           c.Strengths.Val,
		AreasForImprovement: c.AreasForImprovement.Val,
		FinalAssessment:     c.FinalAssessment,
		ConversationHistory: c.ConversationHistory.Val,
		Duration:            c.Duration,
		CompletedAt:         c.CompletedAt,
	}
}
