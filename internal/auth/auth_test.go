package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lead-import-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLookup serves a single user record
type stubLookup struct {
	user        *models.User
	err         error
	credentials int
	byName      int
}

func (s *stubLookup) FindByName(ctx context.Context, name string) (*models.User, error) {
	s.byName++
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil && s.user.UserName == name {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubLookup) FindByCredentials(ctx context.Context, name, password string) (*models.User, error) {
	s.credentials++
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil && s.user.UserName == name && s.user.Password == password {
		return s.user, nil
	}
	return nil, nil
}

func TestNewStrategy(t *testing.T) {
	for _, name := range []string{"", StrategyPlaintext, StrategyArgon2} {
		s, err := NewStrategy(name)
		require.NoError(t, err)
		assert.NotNil(t, s)
	}

	_, err := NewStrategy("rot13")
	assert.Error(t, err)
}

func TestPlaintext(t *testing.T) {
	s := Plaintext{}
	stored, err := s.PreparePassword("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", stored)

	lookup := &stubLookup{user: &models.User{ID: "u-1", UserName: "alice", Password: stored}}

	user, err := s.Authenticate(context.Background(), lookup, "alice", "hunter2")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, 1, lookup.credentials)
	assert.Equal(t, 0, lookup.byName)

	user, err = s.Authenticate(context.Background(), lookup, "alice", "wrong")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestArgon2(t *testing.T) {
	s := Argon2{}
	stored, err := s.PreparePassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "$argon2id$v=19$"))
	assert.NotContains(t, stored, "correct horse")

	lookup := &stubLookup{user: &models.User{ID: "u-1", UserName: "alice", Password: stored}}

	user, err := s.Authenticate(context.Background(), lookup, "alice", "correct horse")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 0, lookup.credentials, "hash must be verified locally")

	user, err = s.Authenticate(context.Background(), lookup, "alice", "battery staple")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = s.Authenticate(context.Background(), lookup, "bob", "correct horse")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestArgon2_PlaintextRowNeverMatches(t *testing.T) {
	lookup := &stubLookup{user: &models.User{UserName: "legacy", Password: "pw"}}

	user, err := Argon2{}.Authenticate(context.Background(), lookup, "legacy", "pw")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestArgon2_HostileStoredParameters(t *testing.T) {
	stored := []string{
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=19$m=65536,t=3,p=0$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=4294967295,t=3,p=4$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
	}

	for _, pw := range stored {
		lookup := &stubLookup{user: &models.User{UserName: "legacy", Password: pw}}

		var user *models.User
		var err error
		require.NotPanics(t, func() {
			user, err = Argon2{}.Authenticate(context.Background(), lookup, "legacy", pw)
		})
		assert.NoError(t, err)
		assert.Nil(t, user)
	}
}

func TestArgon2_LookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Argon2{}.Authenticate(context.Background(), &stubLookup{err: boom}, "alice", "pw")
	assert.ErrorIs(t, err, boom)
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_InvalidHashes(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want error
	}{
		{"empty", "", ErrInvalidHash},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"bad version", "$argon2id$v=1$m=65536,t=3,p=4$c2FsdA$aGFzaA", ErrIncompatibleVersion},
		{"bad params", "$argon2id$v=19$m=x$c2FsdA$aGFzaA", ErrInvalidHash},
		{"bad salt", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA", ErrInvalidHash},
		{"zero time", "$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA", ErrInvalidHash},
		{"zero threads", "$argon2id$v=19$m=65536,t=3,p=0$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA", ErrInvalidHash},
		{"huge memory", "$argon2id$v=19$m=4294967295,t=3,p=4$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA", ErrInvalidHash},
		{"huge time", "$argon2id$v=19$m=65536,t=4294967295,p=4$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA", ErrInvalidHash},
		{"short key", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHQ$aGFzaA", ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword("pw", tt.hash)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
