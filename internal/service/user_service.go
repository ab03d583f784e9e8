package service

import (
	"context"

	"github.com/afristar/helpdesk/internal/authz"
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/repository"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// UserService exposes the admin directory surface.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns paginated accounts, admin-only. Password hashes are never
// loaded by the listing query.
func (s *UserService) List(ctx context.Context, actor authz.Actor, page, limit int) ([]domain.User, Pagination, error) {
	if err := authz.Authorize(actor, authz.ActionUserList, authz.Resource{}); err != nil {
		return nil, Pagination{}, err
	}

	page, limit, offset := normalizePage(page, limit)
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	return users, paginate(total, page, limit), nil
}
