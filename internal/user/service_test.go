package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupHashesPassword(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Signup(validInput())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))
	assert.False(t, created.CreatedAt.IsZero())
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	in := validInput()
	in.Password = "short"

	_, err := service.Signup(in)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	users, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, users, "invalid input must never reach the repository")
}

func TestSignupWhitespaceNameRejected(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	in := validInput()
	in.FirstName = "  "

	_, err := service.Signup(in)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "first_name", validationErr.Field)

	users, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, users, "a whitespace-only name must never be persisted")
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	first, err := service.Signup(validInput())
	require.NoError(t, err)

	second := validInput()
	second.Username = "ada2"
	second.PhoneNumber = nil

	_, err = service.Signup(second)
	assert.ErrorIs(t, err, ErrDuplicate)

	// the original record is unmodified
	stored, err := repo.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored)
}

func TestSignupNormalizesEmail(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	in := validInput()
	in.Email = "  Ada@X.IO "

	created, err := service.Signup(in)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.io", created.Email)
}

func TestAuthenticate(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Signup(validInput())
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Authenticate("nobody@x.io", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate("ada@x.io", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		identity, err := service.Authenticate("ada@x.io", "secret1")
		require.NoError(t, err)
		assert.Equal(t, Identity{ID: created.ID, Username: "ada", Email: "ada@x.io"}, identity)
	})
}

func TestCreateThenGetByIDRoundTrip(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Signup(validInput())
	require.NoError(t, err)

	fetched, err := service.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestUpdateNotFound(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	_, err := service.Update(42, UpdateInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Username:  "grace",
		Email:     "grace@x.io",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateKeepsPasswordHash(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Signup(validInput())
	require.NoError(t, err)

	updated, err := service.Update(created.ID, UpdateInput{
		FirstName: "Augusta",
		LastName:  "King",
		Username:  "ada",
		Email:     "ada@x.io",
	})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDeleteTwice(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Signup(validInput())
	require.NoError(t, err)

	deleted, err := service.Delete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = service.Delete(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
