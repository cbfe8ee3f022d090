package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/reflora/server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(bool), args.Error(1)
}

func (m *MockUserStore) EmailDigestExists(ctx context.Context, digest string) (bool, error) {
	args := m.Called(ctx, digest)
	return args.Get(0).(bool), args.Error(1)
}

// MockCompanyStore mocks the CompanyStore interface
type MockCompanyStore struct {
	mock.Mock
}

func (m *MockCompanyStore) Create(ctx context.Context, company model.Company) (model.Company, error) {
	args := m.Called(ctx, company)
	return args.Get(0).(model.Company), args.Error(1)
}

func (m *MockCompanyStore) GetByID(ctx context.Context, id int64) (model.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Company), args.Error(1)
}

func (m *MockCompanyStore) List(ctx context.Context) ([]model.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Company), args.Error(1)
}

// MockKeyStore mocks the KeyStore interface
type MockKeyStore struct {
	mock.Mock
}

func (m *MockKeyStore) Put(ctx context.Context, userID int64, privateKeyPEM string) error {
	args := m.Called(ctx, userID, privateKeyPEM)
	return args.Error(0)
}

func (m *MockKeyStore) Get(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockKeyStore) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockKeyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(bool), args.Error(1)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int64, role model.Role) (string, error) {
	args := m.Called(userID, role)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockTokenManager) ParseAccessToken(token string) (int64, model.Role, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Get(1).(model.Role), args.Error(2)
}
