package http

import (
	"context"
	"io"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, viewer entity.Viewer, post *entity.Post) (*entity.Post, error) {
	args := m.Called(ctx, viewer, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, viewer entity.Viewer, postID string, patch entity.PostPatch) (*entity.Post, error) {
	args := m.Called(ctx, viewer, postID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, viewer entity.Viewer, postID string) error {
	return m.Called(ctx, viewer, postID).Error(0)
}

func (m *MockPostUseCase) GetPostBySlug(ctx context.Context, viewer entity.Viewer, slug string) (*entity.Post, error) {
	args := m.Called(ctx, viewer, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPostByID(ctx context.Context, viewer entity.Viewer, postID string) (*entity.Post, error) {
	args := m.Called(ctx, viewer, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) QueryPosts(ctx context.Context, viewer entity.Viewer, filters entity.PostFilters) *entity.PostPage {
	return m.Called(ctx, viewer, filters).Get(0).(*entity.PostPage)
}

func (m *MockPostUseCase) GetTrending(ctx context.Context, limit int) []*entity.Post {
	return m.Called(ctx, limit).Get(0).([]*entity.Post)
}

func (m *MockPostUseCase) GetLatest(ctx context.Context, limit int) []*entity.Post {
	return m.Called(ctx, limit).Get(0).([]*entity.Post)
}

func (m *MockPostUseCase) GetRelated(ctx context.Context, post *entity.Post, limit int) []*entity.Post {
	return m.Called(ctx, post, limit).Get(0).([]*entity.Post)
}

func (m *MockPostUseCase) GetByAuthor(ctx context.Context, authorID, excludeID string, limit int) []*entity.Post {
	return m.Called(ctx, authorID, excludeID, limit).Get(0).([]*entity.Post)
}

func (m *MockPostUseCase) SearchPosts(ctx context.Context, query string) []*entity.Post {
	return m.Called(ctx, query).Get(0).([]*entity.Post)
}

func (m *MockPostUseCase) ListTags(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

func (m *MockPostUseCase) ListCategories(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

func (m *MockPostUseCase) UploadImage(ctx context.Context, viewer entity.Viewer, filename, contentType string, body io.ReadSeeker) (string, error) {
	args := m.Called(ctx, viewer, filename, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockPostUseCase) Wait() {
	m.Called()
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.Author, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.Author), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Me(ctx context.Context, authorID string) (*entity.Author, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Author), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)
