package service

import (
	"errors"
	"testing"

	"panelbot/internal/credential"
	"panelbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Provision_Success(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", "newguy").Return(nil, nil)
	mockRepo.On("Create", "newguy", mock.AnythingOfType("string")).
		Return(testutil.NewTestAccount(7, "newguy", "stored"), nil)

	service := NewAccountService(mockRepo)

	cred, err := service.Provision("newguy")

	require.NoError(t, err)
	assert.Equal(t, int64(7), cred.AccountID)
	assert.Equal(t, "newguy", cred.Username)
	assert.Regexp(t, `^newguy[0-9]{3}$`, cred.Password)
	assert.Regexp(t, `^[0-9a-f]+\.[0-9a-f]+$`, cred.Hash)

	// The stored hash must verify against the issued plaintext.
	ok, err := credential.Verify(cred.Password, cred.Hash)
	require.NoError(t, err)
	assert.True(t, ok)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAccountService_Provision_AlreadyExists(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", "taken").
		Return(testutil.NewTestAccount(1, "taken", "abcd.1234"), nil)

	service := NewAccountService(mockRepo)

	cred, err := service.Provision("taken")

	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Nil(t, cred)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Provision_LookupError(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", "newguy").Return(nil, errors.New("connection refused"))

	service := NewAccountService(mockRepo)

	cred, err := service.Provision("newguy")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccountExists)
	assert.Nil(t, cred)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Provision_CreateError(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", "newguy").Return(nil, nil)
	mockRepo.On("Create", "newguy", mock.AnythingOfType("string")).
		Return(nil, errors.New("duplicate key"))

	service := NewAccountService(mockRepo)

	cred, err := service.Provision("newguy")

	assert.Error(t, err)
	assert.Nil(t, cred)
	mockRepo.AssertExpectations(t)
}
