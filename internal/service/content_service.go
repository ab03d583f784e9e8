package service

import (
	"context"

	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/repository"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// ContentService serves the public website content lookup.
type ContentService struct {
	content repository.ContentRepository
}

// NewContentService constructs the service.
func NewContentService(content repository.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// Entries returns all content records keyed for frontend consumption.
func (s *ContentService) Entries(ctx context.Context) ([]domain.ContentEntry, error) {
	entries, err := s.content.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
