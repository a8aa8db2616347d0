package service

import (
	"context"
	"testing"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authFixture() (AuthService, *stubUserRepo, *stubDenylist) {
	users := newStubUserRepo()
	denylist := newStubDenylist()
	svc := NewAuthService(users, denylist, "test-secret", time.Hour)
	return svc, users, denylist
}

func signup(t *testing.T, svc AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:    "alice@pharmacy.test",
		Username: "alice",
		Password: "s3cret99",
		FullName: "Alice K",
	})
	require.NoError(t, err)
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := authFixture()

	created := signup(t, svc)
	assert.Equal(t, "pharmacist", created.Role) // default role
	assert.NotEmpty(t, created.Token)

	logged, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "alice@pharmacy.test", Password: "s3cret99",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", logged.Username)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture()
	signup(t, svc)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "alice@pharmacy.test", Username: "alice2", Password: "other123", FullName: "Alice Two",
	})
	assert.ErrorIs(t, err, apierror.ErrDuplicate)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := authFixture()
	signup(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "alice@pharmacy.test", Password: "wrong",
	})
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
}

func TestVerify(t *testing.T) {
	svc, _, _ := authFixture()
	created := signup(t, svc)

	verified, err := svc.Verify(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@pharmacy.test", verified.Email)
	assert.Equal(t, "pharmacist", verified.Role)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, denylist := authFixture()
	created := signup(t, svc)

	require.NoError(t, svc.Logout(context.Background(), created.Token))
	assert.True(t, denylist.revoked[created.Token])

	_, err := svc.Verify(context.Background(), created.Token)
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
}

func TestVerifyGarbageToken(t *testing.T) {
	svc, _, _ := authFixture()

	_, err := svc.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
}
