package services

import (
	"context"

	"idea-feed/cmd/api/dto"
	"idea-feed/models"
	"idea-feed/repositories"
)

// IdeaStore 는 저장된 아이디어 조회에 필요한 저장소 기능이다.
type IdeaStore interface {
	FindByID(ctx context.Context, id string) (*models.Idea, error)
	List(ctx context.Context, opt repositories.ListIdeasOptions) ([]models.Idea, int64, error)
}

// IdeaService encapsulates read access to stored ideas and DTO mapping
type IdeaService struct {
	repo IdeaStore
}

func NewIdeaService(repo IdeaStore) *IdeaService {
	return &IdeaService{repo: repo}
}

type ListIdeasInput struct {
	Page     int
	PageSize int
	Platform string
	Category string
	Search   string
	Sort     string
}

func (s *IdeaService) List(ctx context.Context, in ListIdeasInput) (dto.Pagination[models.Idea], error) {
	opt := repositories.ListIdeasOptions{
		Page:     in.Page,
		PageSize: in.PageSize,
		Platform: in.Platform,
		Category: in.Category,
		Search:   in.Search,
		Sort:     in.Sort,
	}.Normalize()

	items, total, err := s.repo.List(ctx, opt)
	if err != nil {
		return dto.Pagination[models.Idea]{}, err
	}
	if items == nil {
		items = []models.Idea{}
	}
	return dto.Pagination[models.Idea]{
		Data:     items,
		Page:     opt.Page,
		PageSize: opt.PageSize,
		Total:    total,
	}, nil
}

// GetByID returns repositories.ErrNotFound when no idea has id.
func (s *IdeaService) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	return s.repo.FindByID(ctx, id)
}
