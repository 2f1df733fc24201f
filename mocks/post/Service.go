package mocks

import (
	context "context"

	model "kaizen-board/internal/domain/models"

	mock "github.com/stretchr/testify/mock"
)

// Service is a mock type for the Service type
type Service struct {
	mock.Mock
}

func postsOrNil(v any) []*model.Post {
	if v == nil {
		return nil
	}
	return v.([]*model.Post)
}

func postOrNil(v any) *model.Post {
	if v == nil {
		return nil
	}
	return v.(*model.Post)
}

// ListPosts provides a mock function with given fields: ctx, filters
func (_m *Service) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error) {
	ret := _m.Called(ctx, filters)
	return postsOrNil(ret.Get(0)), ret.Error(1)
}

// CreatePost provides a mock function with given fields: ctx, post
func (_m *Service) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	ret := _m.Called(ctx, post)
	return postOrNil(ret.Get(0)), ret.Error(1)
}

// AddLike provides a mock function with given fields: ctx, id
func (_m *Service) AddLike(ctx context.Context, id int64) (*model.Post, error) {
	ret := _m.Called(ctx, id)
	return postOrNil(ret.Get(0)), ret.Error(1)
}

// MarkAsDone provides a mock function with given fields: ctx, id
func (_m *Service) MarkAsDone(ctx context.Context, id int64) (*model.Post, error) {
	ret := _m.Called(ctx, id)
	return postOrNil(ret.Get(0)), ret.Error(1)
}

// NewService creates a new instance of Service. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := &Service{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
