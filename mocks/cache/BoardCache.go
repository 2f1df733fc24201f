package mocks

import (
	context "context"

	model "kaizen-board/internal/domain/models"

	mock "github.com/stretchr/testify/mock"
)

// BoardCache is a mock type for the BoardCache type
type BoardCache struct {
	mock.Mock
}

// GetBoard provides a mock function with given fields: ctx, order
func (_m *BoardCache) GetBoard(ctx context.Context, order model.ListOrder) ([]*model.Post, int64, error) {
	ret := _m.Called(ctx, order)

	var r0 []*model.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*model.Post)
	}

	return r0, ret.Get(1).(int64), ret.Error(2)
}

// SetBoard provides a mock function with given fields: ctx, order, gen, posts
func (_m *BoardCache) SetBoard(ctx context.Context, order model.ListOrder, gen int64, posts []*model.Post) error {
	ret := _m.Called(ctx, order, gen, posts)
	return ret.Error(0)
}

// InvalidateBoard provides a mock function with given fields: ctx
func (_m *BoardCache) InvalidateBoard(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewBoardCache creates a new instance of BoardCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewBoardCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *BoardCache {
	m := &BoardCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
