package user

import (
	"sync"
	"time"
)

// Repository is the only component with access to user storage.
type Repository interface {
	List() ([]User, error)
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	Create(user User) (User, error)
	Update(id int, user User) (User, error)
	Delete(id int) (User, error)
}

// InMemoryRepository mirrors the Postgres repository's semantics, including
// uniqueness on email, username and phone_number, so service and handler
// tests can exercise conflict and not-found paths without a database.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]User, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, user := range seed {
		repo.users = append(repo.users, user)
		if user.ID > maxID {
			maxID = user.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List() ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, len(r.users))
	copy(users, r.users)
	return users, nil
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflicts(user, 0) {
		return User{}, ErrDuplicate
	}

	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryRepository) Update(id int, userUpdate User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID != id {
			continue
		}
		if r.conflicts(userUpdate, id) {
			return User{}, ErrDuplicate
		}
		user.FirstName = userUpdate.FirstName
		user.LastName = userUpdate.LastName
		user.Username = userUpdate.Username
		user.PhoneNumber = userUpdate.PhoneNumber
		user.Email = userUpdate.Email
		r.users[i] = user
		return user, nil
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

// conflicts reports whether another record (excluding selfID) already holds
// one of the unique fields.
func (r *InMemoryRepository) conflicts(candidate User, selfID int) bool {
	for _, user := range r.users {
		if user.ID == selfID {
			continue
		}
		if user.Email == candidate.Email || user.Username == candidate.Username {
			return true
		}
		if user.PhoneNumber != nil && candidate.PhoneNumber != nil && *user.PhoneNumber == *candidate.PhoneNumber {
			return true
		}
	}
	return false
}
