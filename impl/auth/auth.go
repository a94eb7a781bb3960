package auth

import (
	"context"
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
	"zylumine/entity"
)

// Cost is the bcrypt cost factor used for admin passwords.
const Cost = 10

// dummyHash is compared against when the email is unknown so both failure paths
// take the same time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Database interface {
	AdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
}

type Auth struct {
	db Database
}

func New(db Database) *Auth {
	return &Auth{db: db}
}

func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks the credential pair against the admin store. Unknown email and
// wrong password both return entity.ErrInvalidCredentials; store failures are
// returned as they are.
func (a *Auth) Verify(ctx context.Context, email, password string) (*entity.Admin, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	admin, err := a.db.AdminByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	hash := dummyHash
	if admin != nil {
		hash = admin.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if admin == nil || compareErr != nil {
		return nil, entity.ErrInvalidCredentials
	}
	return admin, nil
}

// Known reports whether an admin with this email exists.
func (a *Auth) Known(ctx context.Context, email string) (*entity.Admin, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	return a.db.AdminByEmail(ctx, email)
}
