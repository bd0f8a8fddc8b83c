package user

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	createTableQuery = `
		CREATE TABLE IF NOT EXISTS users (
			id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			username VARCHAR(50) UNIQUE NOT NULL,
			phone_number VARCHAR(20) UNIQUE,
			email VARCHAR(100) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)
	`

	userColumns = `id, first_name, last_name, username, phone_number, email, password_hash, created_at`

	listUsersQuery = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`
	getUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (first_name, last_name, username, phone_number, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`
	updateUserQuery = `
		UPDATE users
		SET first_name = $1,
			last_name = $2,
			username = $3,
			phone_number = $4,
			email = $5
		WHERE id = $6
		RETURNING ` + userColumns + `
	`
	deleteUserQuery = `
		DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns + `
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(createTableQuery)
	return err
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.queryOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.queryOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) Create(user User) (User, error) {
	created, err := scanUser(r.db.QueryRow(
		insertUserQuery,
		user.FirstName,
		user.LastName,
		user.Username,
		phoneArg(user.PhoneNumber),
		user.Email,
		user.PasswordHash,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}

	return created, nil
}

func (r *PostgresRepository) Update(id int, userUpdate User) (User, error) {
	updated, err := scanUser(r.db.QueryRow(
		updateUserQuery,
		userUpdate.FirstName,
		userUpdate.LastName,
		userUpdate.Username,
		phoneArg(userUpdate.PhoneNumber),
		userUpdate.Email,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(id int) (User, error) {
	deleted, err := scanUser(r.db.QueryRow(deleteUserQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return deleted, nil
}

func (r *PostgresRepository) queryOne(query string, arg any) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var phone sql.NullString

	if err := scanner.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&phone,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return User{}, err
	}

	if phone.Valid {
		user.PhoneNumber = &phone.String
	}

	return user, nil
}

// phoneArg maps an absent phone number to NULL so the partial unique
// constraint on phone_number never fires for users without one.
func phoneArg(phone *string) any {
	if phone == nil || *phone == "" {
		return nil
	}
	return *phone
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
