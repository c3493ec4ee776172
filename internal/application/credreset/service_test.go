package credreset

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitalsign-api/internal/application/verification"
	"github.com/vitalsign-api/internal/domain"
	"github.com/vitalsign-api/internal/infrastructure/rediskv"
)

// --- mocks ---

type mockCodes struct{ mock.Mock }

func (m *mockCodes) Issue(ctx context.Context, userID, purpose string) (string, error) {
	args := m.Called(ctx, userID, purpose)
	return args.String(0), args.Error(1)
}

func (m *mockCodes) Verify(ctx context.Context, userID, code, purpose string) (bool, error) {
	args := m.Called(ctx, userID, code, purpose)
	return args.Bool(0), args.Error(1)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) LookupByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectory) UpdateCredential(ctx context.Context, userID, newPassword string) (bool, error) {
	args := m.Called(ctx, userID, newPassword)
	return args.Bool(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

// --- ResetPassword ---

func TestResetPassword_MissingInput_NoStoreAccess(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	svc := NewService(codes, dir, &mockMailer{}, nil)

	for _, tc := range []struct{ userID, code, password string }{
		{"", "482913", "new-secret-1"},
		{"u1", "", "new-secret-1"},
		{"u1", "482913", ""},
	} {
		err := svc.ResetPassword(context.Background(), tc.userID, tc.code, tc.password)
		require.ErrorIs(t, err, domain.ErrBadRequest)
	}
	codes.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	dir.AssertNotCalled(t, "UpdateCredential", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_InvalidCode_Unauthorized(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	codes.On("Verify", mock.Anything, "u1", "000000", domain.PurposePasswordReset).Return(false, nil)

	err := NewService(codes, dir, &mockMailer{}, nil).ResetPassword(context.Background(), "u1", "000000", "new-secret-1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	dir.AssertNotCalled(t, "UpdateCredential", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_ValidCodeUnknownUser_UpdateFailedNotUnauthorized(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	codes.On("Verify", mock.Anything, "ghost", "482913", domain.PurposePasswordReset).Return(true, nil)
	dir.On("UpdateCredential", mock.Anything, "ghost", "new-secret-1").Return(false, nil)

	err := NewService(codes, dir, &mockMailer{}, nil).ResetPassword(context.Background(), "ghost", "482913", "new-secret-1")
	require.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword_PersistenceFailure_UpdateFailed(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	codes.On("Verify", mock.Anything, "u1", "482913", domain.PurposePasswordReset).Return(true, nil)
	dir.On("UpdateCredential", mock.Anything, "u1", "new-secret-1").Return(false, domain.ErrUnavailable)

	err := NewService(codes, dir, &mockMailer{}, nil).ResetPassword(context.Background(), "u1", "482913", "new-secret-1")
	require.ErrorIs(t, err, domain.ErrUpdateFailed)
}

func TestResetPassword_StoreDown_PropagatesUnavailable(t *testing.T) {
	codes := &mockCodes{}
	codes.On("Verify", mock.Anything, "u1", "482913", domain.PurposePasswordReset).Return(false, domain.ErrUnavailable)

	err := NewService(codes, &mockDirectory{}, &mockMailer{}, nil).ResetPassword(context.Background(), "u1", "482913", "new-secret-1")
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword_HappyPath(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	codes.On("Verify", mock.Anything, "u1", "482913", domain.PurposePasswordReset).Return(true, nil)
	dir.On("UpdateCredential", mock.Anything, "u1", "new-secret-1").Return(true, nil)

	err := NewService(codes, dir, &mockMailer{}, nil).ResetPassword(context.Background(), "u1", "482913", "new-secret-1")
	require.NoError(t, err)
	dir.AssertExpectations(t)
}

// End to end against a real code store: a planted code resets once, and a
// replay of the identical call is rejected as unauthorized.
func TestResetPassword_ReplayAfterSuccess_Unauthorized(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	kv := rediskv.NewClientFromRedis(rdb)
	ctx := context.Background()

	record := domain.VerificationCode{
		UserID:    "u1",
		Purpose:   domain.PurposePasswordReset,
		Code:      "482913",
		ExpiresAt: time.Now().Add(10 * time.Minute).Unix(),
	}
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "verification:password_reset:u1", string(raw), 10*time.Minute))

	dir := &mockDirectory{}
	dir.On("UpdateCredential", mock.Anything, "u1", "new-secret-1").Return(true, nil).Once()

	svc := NewService(verification.NewService(kv, 10*time.Minute), dir, &mockMailer{}, nil)

	require.NoError(t, svc.ResetPassword(ctx, "u1", "482913", "new-secret-1"))

	err = svc.ResetPassword(ctx, "u1", "482913", "new-secret-1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	dir.AssertNumberOfCalls(t, "UpdateCredential", 1)
}

// --- RequestReset ---

func TestRequestReset_UnknownUser_NotFound(t *testing.T) {
	dir := &mockDirectory{}
	dir.On("LookupByID", mock.Anything, "ghost").Return(nil, nil)

	err := NewService(&mockCodes{}, dir, &mockMailer{}, nil).RequestReset(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestReset_DeliversCodeByEmail(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	ml := &mockMailer{}

	dir.On("LookupByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	codes.On("Issue", mock.Anything, "u1", domain.PurposePasswordReset).Return("482913", nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, "Your verification code: 482913").Return(nil)

	err := NewService(codes, dir, ml, nil).RequestReset(context.Background(), "u1")
	require.NoError(t, err)
	ml.AssertExpectations(t)
}

func TestRequestReset_PhoneOnFile_SendsSMS(t *testing.T) {
	codes := &mockCodes{}
	dir := &mockDirectory{}
	ml := &mockMailer{}
	sms := &mockSMSSender{}

	phone := "+15550100"
	dir.On("LookupByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com", Phone: &phone}, nil)
	codes.On("Issue", mock.Anything, "u1", domain.PurposePasswordReset).Return("482913", nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(nil)
	sms.On("SendSMS", mock.Anything, phone, mock.Anything).Return(nil)

	err := NewService(codes, dir, ml, sms).RequestReset(context.Background(), "u1")
	require.NoError(t, err)
	sms.AssertExpectations(t)
}
