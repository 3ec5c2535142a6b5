package service

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) All(ctx context.Context) ([]*model.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Company), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *repository.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Create(ctx context.Context, list *repository.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) Get(ctx context.Context, id string) (*repository.List, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.List), args.Error(1)
}

func (m *MockListRepository) GetVisible(ctx context.Context, email string) ([]*repository.List, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.List), args.Error(1)
}

func (m *MockListRepository) MarkDeleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListItemRepository struct {
	mock.Mock
}

func (m *MockListItemRepository) GetByList(ctx context.Context, listID string) ([]*repository.ListItem, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.ListItem), args.Error(1)
}

func (m *MockListItemRepository) Add(ctx context.Context, item *repository.ListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockListItemRepository) Remove(ctx context.Context, listID, companyID string) error {
	args := m.Called(ctx, listID, companyID)
	return args.Error(0)
}

type MockUnlockRepository struct {
	mock.Mock
}

func (m *MockUnlockRepository) GetByEmail(ctx context.Context, email string) ([]*repository.Unlock, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Unlock), args.Error(1)
}

func (m *MockUnlockRepository) Add(ctx context.Context, unlock *repository.Unlock) error {
	args := m.Called(ctx, unlock)
	return args.Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEnquiry(ctx context.Context, enquiry *model.Enquiry) error {
	args := m.Called(ctx, enquiry)
	return args.Error(0)
}
