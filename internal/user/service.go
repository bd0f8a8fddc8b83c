package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor used for every stored
// credential. bcrypt.DefaultCost is 10 rounds.
const passwordHashCost = bcrypt.DefaultCost

// SignupInput carries the raw signup payload into the service.
type SignupInput struct {
	FirstName   string
	LastName    string
	Username    string
	PhoneNumber *string
	Email       string
	Password    string
}

// UpdateInput carries the mutable profile fields. The password hash is
// never updated through this path.
type UpdateInput struct {
	FirstName   string
	LastName    string
	Username    string
	PhoneNumber *string
	Email       string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Signup validates the payload, hashes the password and stores the record.
// Uniqueness is left to the storage constraints: a duplicate email,
// username or phone number surfaces as ErrDuplicate from the repository.
func (s *Service) Signup(in SignupInput) (User, error) {
	if err := validateSignup(in); err != nil {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Username:     in.Username,
		PhoneNumber:  normalizePhone(in.PhoneNumber),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hashed),
	})
}

// Authenticate verifies a plaintext password against the stored hash.
// A missing account and a wrong password both yield ErrInvalidCredentials
// so the response never reveals which check failed.
func (s *Service) Authenticate(email, password string) (Identity, error) {
	user, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Update(id int, in UpdateInput) (User, error) {
	return s.repo.Update(id, User{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Username:    in.Username,
		PhoneNumber: normalizePhone(in.PhoneNumber),
		Email:       normalizeEmail(in.Email),
	})
}

func (s *Service) Delete(id int) (User, error) {
	return s.repo.Delete(id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone *string) *string {
	if phone == nil || strings.TrimSpace(*phone) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*phone)
	return &trimmed
}
