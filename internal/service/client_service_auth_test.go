package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/mock"
	"github.com/Deadmanswitch/encryption/models"
)

func newTestClientAuthSvc(t *testing.T, ctrl *gomock.Controller) (ClientAuthService, *mock.MockServerAdapter, *mock.MockKeyBoxService) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockKeyBox := mock.NewMockKeyBoxService(ctrl)

	return NewClientAuthService(mockAdapter, mockKeyBox, logger.Nop()), mockAdapter, mockKeyBox
}

func TestClientAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyBox := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	const (
		salt        = "AAAAAAAAAAAAAAAAAAAAAA=="
		fingerprint = "ZmluZ2VycHJpbnQ="
	)

	gomock.InOrder(
		mockKeyBox.EXPECT().GenerateSalt().Return(salt, nil),
		mockKeyBox.EXPECT().Fingerprint("secret", salt).Return(fingerprint, nil),
		mockAdapter.EXPECT().Register(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "alice", u.Login)
				assert.Equal(t, salt, u.Salt)
				assert.Equal(t, fingerprint, u.Fingerprint)
				assert.Empty(t, u.Password, "password must never leave the client")
				u.UserID = 7
				return u, nil
			},
		),
	)

	registered, err := svc.Register(ctx, models.User{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), registered.UserID)
}

func TestClientAuthService_Register_SaltFallbackToServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyBox := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	const salt = "BBBBBBBBBBBBBBBBBBBBBB=="

	gomock.InOrder(
		mockKeyBox.EXPECT().GenerateSalt().Return("", crypto.ErrCapabilityUnsupported),
		mockAdapter.EXPECT().GenerateSalt(ctx).Return(salt, nil),
		mockKeyBox.EXPECT().Fingerprint("secret", salt).Return("ZmluZ2VycHJpbnQ=", nil),
		mockAdapter.EXPECT().Register(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, salt, u.Salt)
				return u, nil
			},
		),
	)

	_, err := svc.Register(ctx, models.User{Login: "alice", Password: "secret"})
	require.NoError(t, err)
}

func TestClientAuthService_Register_SaltErrorSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockKeyBox := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	saltErr := errors.New("entropy pool exhausted")
	mockKeyBox.EXPECT().GenerateSalt().Return("", saltErr)

	_, err := svc.Register(ctx, models.User{Login: "alice", Password: "secret"})
	assert.ErrorIs(t, err, saltErr)
}

func TestClientAuthService_Register_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.User{Login: "alice"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(ctx, models.User{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyBox := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	const (
		salt        = "AAAAAAAAAAAAAAAAAAAAAA=="
		fingerprint = "ZmluZ2VycHJpbnQ="
	)

	gomock.InOrder(
		mockAdapter.EXPECT().AccountParams(ctx, "alice").Return(models.User{Login: "alice", Salt: salt}, nil),
		mockKeyBox.EXPECT().Fingerprint("secret", salt).Return(fingerprint, nil),
		mockAdapter.EXPECT().Login(ctx, models.User{Login: "alice", Fingerprint: fingerprint}).
			Return(models.Token{SignedString: "signed.jwt.token", UserID: 7}, nil),
	)

	token, err := svc.Login(ctx, models.User{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", token.SignedString)
}

func TestClientAuthService_Login_UnknownLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	paramsErr := errors.New("account not found")
	mockAdapter.EXPECT().AccountParams(ctx, "ghost").Return(models.User{}, paramsErr)

	_, err := svc.Login(ctx, models.User{Login: "ghost", Password: "secret"})
	assert.ErrorIs(t, err, paramsErr)
}
