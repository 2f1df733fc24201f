package mocks

import (
	context "context"

	model "kaizen-board/internal/domain/models"

	mock "github.com/stretchr/testify/mock"
)

// Repository is a mock type for the Repository type
type Repository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, post
func (_m *Repository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	ret := _m.Called(ctx, post)

	var r0 *model.Post
	if rf, ok := ret.Get(0).(func(context.Context, *model.Post) *model.Post); ok {
		r0 = rf(ctx, post)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Post)
	}

	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *Repository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Post)
	}

	return r0, ret.Error(1)
}

// GetByIDForUpdate provides a mock function with given fields: ctx, id
func (_m *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Post, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Post)
	}

	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, id, update
func (_m *Repository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	ret := _m.Called(ctx, id, update)

	var r0 *model.Post
	if rf, ok := ret.Get(0).(func(context.Context, int64, *model.UpdatePostDTO) *model.Post); ok {
		r0 = rf(ctx, id, update)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Post)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, filters
func (_m *Repository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	ret := _m.Called(ctx, filters)

	var r0 []*model.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*model.Post)
	}

	return r0, ret.Error(1)
}

// NewRepository creates a new instance of Repository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *Repository {
	m := &Repository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
