// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/mock"
	"github.com/Deadmanswitch/encryption/models"
)

type protectSvcMocks struct {
	adapter *mock.MockServerAdapter
	outbox  *mock.MockOutboxRepository
	keyBox  *mock.MockKeyBoxService
	cipher  *mock.MockStreamCipherService
}

func newTestProtectSvc(t *testing.T, ctrl *gomock.Controller) (ClientProtectService, protectSvcMocks) {
	t.Helper()
	mocks := protectSvcMocks{
		adapter: mock.NewMockServerAdapter(ctrl),
		outbox:  mock.NewMockOutboxRepository(ctrl),
		keyBox:  mock.NewMockKeyBoxService(ctrl),
		cipher:  mock.NewMockStreamCipherService(ctrl),
	}

	svc := NewClientProtectService(mocks.adapter, mocks.outbox, mocks.keyBox, mocks.cipher, logger.Nop())
	return svc, mocks
}

func TestClientProtectService_Protect_FramesLargePayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	const (
		salt        = "AAAAAAAAAAAAAAAAAAAAAA=="
		key         = "ZGVyaXZlZC1rZXk="
		fingerprint = "ZmluZ2VycHJpbnQ="
	)

	// 4096*2 + 100 bytes must produce exactly three frames, the last one short.
	payload := bytes.Repeat([]byte{0xAB}, frameSize*2+100)

	mocks.keyBox.EXPECT().GenerateSalt().Return(salt, nil)
	mocks.keyBox.EXPECT().DeriveKey("secret", salt).Return(key, nil)
	mocks.keyBox.EXPECT().Fingerprint("secret", salt).Return(fingerprint, nil)

	var framed [][]byte
	mocks.cipher.EXPECT().EncryptText(key, salt, gomock.Any()).DoAndReturn(
		func(_, _ string, plaintext string) (string, error) {
			framed = append(framed, []byte(plaintext))
			return fmt.Sprintf("frame-%d", len(framed)-1), nil
		},
	).Times(3)

	mocks.adapter.EXPECT().CreateItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.ProtectedItem) (models.ProtectedItem, error) {
			assert.NotEmpty(t, item.ID)
			assert.Equal(t, salt, item.Salt)
			assert.Equal(t, fingerprint, item.Fingerprint)
			assert.Equal(t, int64(len(payload)), item.Size)
			assert.Equal(t, 3, item.ChunkCount)
			return item, nil
		},
	)

	mocks.outbox.EXPECT().Enqueue(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, chunks []models.CipherChunk) error {
			require.Len(t, chunks, 3)
			for idx, chunk := range chunks {
				assert.Equal(t, idx, chunk.Seq)
				assert.Equal(t, fmt.Sprintf("frame-%d", idx), chunk.Data)
			}
			return nil
		},
	)

	item, err := svc.Protect(ctx, "disk image", "binary", "secret", payload)
	require.NoError(t, err)
	assert.Equal(t, 3, item.ChunkCount)

	require.Len(t, framed, 3)
	assert.Len(t, framed[0], frameSize)
	assert.Len(t, framed[1], frameSize)
	assert.Len(t, framed[2], 100)
}

func TestClientProtectService_Protect_EmptyPayloadSingleFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	mocks.keyBox.EXPECT().GenerateSalt().Return("salt", nil)
	mocks.keyBox.EXPECT().DeriveKey("secret", "salt").Return("key", nil)
	mocks.keyBox.EXPECT().Fingerprint("secret", "salt").Return("fp", nil)
	mocks.cipher.EXPECT().EncryptText("key", "salt", "").Return("padding-only", nil)
	mocks.adapter.EXPECT().CreateItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.ProtectedItem) (models.ProtectedItem, error) {
			assert.Equal(t, 1, item.ChunkCount)
			assert.Zero(t, item.Size)
			return item, nil
		},
	)
	mocks.outbox.EXPECT().Enqueue(ctx, gomock.Len(1)).Return(nil)

	item, err := svc.Protect(ctx, "empty note", "text", "secret", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, item.ChunkCount)
}

func TestClientProtectService_Protect_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Protect(ctx, "", "text", "secret", []byte("data"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Protect(ctx, "note", "text", "", []byte("data"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientProtectService_Protect_RegistrationFailureSkipsOutbox(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	mocks.keyBox.EXPECT().GenerateSalt().Return("salt", nil)
	mocks.keyBox.EXPECT().DeriveKey("secret", "salt").Return("key", nil)
	mocks.keyBox.EXPECT().Fingerprint("secret", "salt").Return("fp", nil)
	mocks.cipher.EXPECT().EncryptText("key", "salt", "data").Return("cipher", nil)

	regErr := fmt.Errorf("server unavailable")
	mocks.adapter.EXPECT().CreateItem(ctx, gomock.Any()).Return(models.ProtectedItem{}, regErr)

	_, err := svc.Protect(ctx, "note", "text", "secret", []byte("data"))
	assert.ErrorIs(t, err, regErr)
}

func TestClientProtectService_Recover_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	item := models.ProtectedItem{
		ID:          "id-1",
		Salt:        "salt",
		Fingerprint: "fp",
		Size:        10,
		ChunkCount:  2,
	}
	chunks := []models.CipherChunk{
		{ItemID: "id-1", Seq: 0, Data: "frame-0"},
		{ItemID: "id-1", Seq: 1, Data: "frame-1"},
	}

	gomock.InOrder(
		mocks.adapter.EXPECT().GetItem(ctx, "id-1").Return(item, nil),
		mocks.keyBox.EXPECT().Fingerprint("secret", "salt").Return("fp", nil),
		mocks.adapter.EXPECT().DownloadChunks(ctx, "id-1").Return(chunks, nil),
		mocks.keyBox.EXPECT().DeriveKey("secret", "salt").Return("key", nil),
		mocks.cipher.EXPECT().DecryptText("key", "salt", "frame-0").Return("hello", nil),
		mocks.cipher.EXPECT().DecryptText("key", "salt", "frame-1").Return("world", nil),
	)

	payload, err := svc.Recover(ctx, "id-1", "secret")
	require.NoError(t, err)
	assert.Equal(t, []byte("helloworld"), payload)
}

func TestClientProtectService_Recover_WrongPasswordBeforeDownload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	item := models.ProtectedItem{ID: "id-1", Salt: "salt", Fingerprint: "fp"}

	// DownloadChunks must never be called when the fingerprint check fails.
	mocks.adapter.EXPECT().GetItem(ctx, "id-1").Return(item, nil)
	mocks.keyBox.EXPECT().Fingerprint("wrong", "salt").Return("other-fp", nil)

	_, err := svc.Recover(ctx, "id-1", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestClientProtectService_Recover_CorruptFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	item := models.ProtectedItem{ID: "id-1", Salt: "salt", Fingerprint: "fp", Size: 5, ChunkCount: 1}
	chunks := []models.CipherChunk{{ItemID: "id-1", Seq: 0, Data: "mangled"}}

	mocks.adapter.EXPECT().GetItem(ctx, "id-1").Return(item, nil)
	mocks.keyBox.EXPECT().Fingerprint("secret", "salt").Return("fp", nil)
	mocks.adapter.EXPECT().DownloadChunks(ctx, "id-1").Return(chunks, nil)
	mocks.keyBox.EXPECT().DeriveKey("secret", "salt").Return("key", nil)
	mocks.cipher.EXPECT().DecryptText("key", "salt", "mangled").Return("", crypto.ErrCorruptCiphertext)

	_, err := svc.Recover(ctx, "id-1", "secret")
	assert.ErrorIs(t, err, crypto.ErrCorruptCiphertext)
}

func TestClientProtectService_Recover_SequenceGap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	item := models.ProtectedItem{ID: "id-1", Salt: "salt", Fingerprint: "fp", Size: 10, ChunkCount: 2}
	chunks := []models.CipherChunk{
		{ItemID: "id-1", Seq: 0, Data: "frame-0"},
		{ItemID: "id-1", Seq: 2, Data: "frame-2"},
	}

	mocks.adapter.EXPECT().GetItem(ctx, "id-1").Return(item, nil)
	mocks.keyBox.EXPECT().Fingerprint("secret", "salt").Return("fp", nil)
	mocks.adapter.EXPECT().DownloadChunks(ctx, "id-1").Return(chunks, nil)
	mocks.keyBox.EXPECT().DeriveKey("secret", "salt").Return("key", nil)
	mocks.cipher.EXPECT().DecryptText("key", "salt", "frame-0").Return("hello", nil)

	_, err := svc.Recover(ctx, "id-1", "secret")
	assert.ErrorIs(t, err, ErrChunkSequenceGap)
}

func TestClientProtectService_Recover_SizeMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	item := models.ProtectedItem{ID: "id-1", Salt: "salt", Fingerprint: "fp", Size: 100, ChunkCount: 1}
	chunks := []models.CipherChunk{{ItemID: "id-1", Seq: 0, Data: "frame-0"}}

	mocks.adapter.EXPECT().GetItem(ctx, "id-1").Return(item, nil)
	mocks.keyBox.EXPECT().Fingerprint("secret", "salt").Return("fp", nil)
	mocks.adapter.EXPECT().DownloadChunks(ctx, "id-1").Return(chunks, nil)
	mocks.keyBox.EXPECT().DeriveKey("secret", "salt").Return("key", nil)
	mocks.cipher.EXPECT().DecryptText("key", "salt", "frame-0").Return("short", nil)

	_, err := svc.Recover(ctx, "id-1", "secret")
	assert.ErrorIs(t, err, ErrRecoveredSizeMismatch)
}

func TestClientProtectService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestProtectSvc(t, ctrl)
	ctx := context.Background()

	filter := models.ItemListFilter{ContentType: "text"}
	items := []models.ProtectedItem{{ID: "id-1"}, {ID: "id-2"}}
	mocks.adapter.EXPECT().ListItems(ctx, filter).Return(items, nil)

	got, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
