package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reflora/server/internal/model"
	"github.com/reflora/server/internal/testutil"
)

func TestExport_ExportUser(t *testing.T) {
	ctx := context.Background()
	users := &MockUserStore{}
	keyStore := &MockKeyStore{}
	storage := &MockStorage{}
	svc := NewExport(newUserService(users, &MockCompanyStore{}, keyStore), storage, testutil.MakeNoopLogger())

	row, privatePEM := makeEncryptedUser(t, 1, "Ana", "Silva", "ana@x.com")
	users.On("GetByID", ctx, int64(1)).Return(row, nil)
	keyStore.On("Get", ctx, int64(1)).Return(privatePEM, nil)

	var uploaded []byte
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			body, err := io.ReadAll(args.Get(2).(io.Reader))
			require.NoError(t, err)
			uploaded = body
		}).
		Return(nil)

	key, err := svc.ExportUser(ctx, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "exports/user-1-"))
	assert.True(t, strings.HasSuffix(key, ".json"))

	var doc struct {
		User model.UserView `json:"user"`
	}
	require.NoError(t, json.Unmarshal(uploaded, &doc))
	assert.Equal(t, "ana@x.com", doc.User.Email)
	assert.Equal(t, "Ana", doc.User.FirstName)
}

func TestExport_ExportUser_NotFound(t *testing.T) {
	ctx := context.Background()
	users := &MockUserStore{}
	storage := &MockStorage{}
	svc := NewExport(newUserService(users, &MockCompanyStore{}, &MockKeyStore{}), storage, testutil.MakeNoopLogger())

	users.On("GetByID", ctx, int64(1)).Return(model.User{}, model.ErrNotFound)

	_, err := svc.ExportUser(ctx, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestExport_DownloadExport(t *testing.T) {
	ctx := context.Background()
	storage := &MockStorage{}
	svc := NewExport(nil, storage, testutil.MakeNoopLogger())

	storage.On("Exists", ctx, "exports/user-1-abc.json").Return(true, nil)
	storage.On("Download", ctx, "exports/user-1-abc.json").
		Return(io.NopCloser(strings.NewReader("{}")), nil)

	reader, err := svc.DownloadExport(ctx, "exports/user-1-abc.json")
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
}

func TestExport_DownloadExport_Absent(t *testing.T) {
	ctx := context.Background()
	storage := &MockStorage{}
	svc := NewExport(nil, storage, testutil.MakeNoopLogger())

	storage.On("Exists", ctx, "exports/missing.json").Return(false, nil)

	_, err := svc.DownloadExport(ctx, "exports/missing.json")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestExport_DeleteExport(t *testing.T) {
	ctx := context.Background()
	storage := &MockStorage{}
	svc := NewExport(nil, storage, testutil.MakeNoopLogger())

	storage.On("Delete", ctx, "exports/user-1-abc.json").Return(nil)

	require.NoError(t, svc.DeleteExport(ctx, "exports/user-1-abc.json"))
}
