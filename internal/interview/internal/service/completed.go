package service

import (
	"context"

	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository"
)

var ErrInterviewNotFound = repository.ErrInterviewNotFound

// 复盘页一次最多展示最近的 10 条
const listLimit = 10

//go:generate mockgen -source=./completed.go -destination=../../mocks/completed.mock.go -package=interviewmocks -typed=true CompletedInterviewService
type CompletedInterviewService interface {
	List(ctx context.Context, uid int64) ([]domain.CompletedInterview, error)
	Detail(ctx context.Context, id, uid int64) (domain.CompletedInterview, error)
}

type completedInterviewService struct {
	repo repository.CompletedInterviewRepository
}

func NewCompletedInterviewService(repo repository.CompletedInterviewRepository) CompletedInterviewService {
	return &completedInterviewService{repo: repo}
}

func (s *completedInterviewService) List(ctx context.Context, uid int64) ([]domain.CompletedInterview, error) {
	return s.repo.ListByUid(ctx, uid, listLimit)
}

func (s *completedInterviewService) Detail(ctx context.Context, id, uid int64) (domain.CompletedInterview, error) {
	return s.repo.GetById(ctx, id, uid)
}
