// Package users stores back-office staff accounts.
//
// It checks credentials only; sessions live outside this module.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/kedaikopi/backoffice/internal/access"
	"github.com/kedaikopi/backoffice/internal/search"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidName        = errors.New("name is required (max 255 characters)")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DefaultCost is the bcrypt cost for new hashes.
const DefaultCost = 12

// User is a staff account. Email is stored lower-cased.
type User struct {
	ID           uint        `gorm:"primaryKey"`
	Name         string      `gorm:"size:255;not null"`
	Email        string      `gorm:"size:255;not null;index"`
	PasswordHash string      `gorm:"column:password;size:255;not null"`
	Role         access.Role `gorm:"size:32;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// Can reports whether the user's role holds p.
func (u User) Can(p access.Permission) bool {
	return access.Can(u.Role, p)
}

// Store manages users in a gorm database.
type Store struct {
	db   *gorm.DB
	log  *slog.Logger
	cost int
}

// NewStore creates a store. cost <= 0 means DefaultCost.
func NewStore(db *gorm.DB, logger *slog.Logger, cost int) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Store{db: db, log: logger, cost: cost}
}

// Create adds a user with a hashed password.
func (s *Store) Create(ctx context.Context, name, email, password string, role access.Role) (*User, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	email, err = cleanEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u := &User{Name: name, Email: email, PasswordHash: hash, Role: role}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := emailFree(tx, email, 0); err != nil {
			return err
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created", "id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

// Update changes name and email.
func (s *Store) Update(ctx context.Context, id uint, name, email string) (*User, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	email, err = cleanEmail(email)
	if err != nil {
		return nil, err
	}

	var u *User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u, err = find(tx, id); err != nil {
			return err
		}
		if err := emailFree(tx, email, id); err != nil {
			return err
		}
		u.Name, u.Email = name, email
		return tx.Model(u).Select("name", "email", "updated_at").Updates(u).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user updated", "id", u.ID)
	return u, nil
}

// SetPassword replaces the password hash.
func (s *Store) SetPassword(ctx context.Context, id uint, password string) error {
	hash, err := s.hash(password)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.InfoContext(ctx, "user password changed", "id", id)
	return nil
}

// AssignRole sets the user's role; RoleNone revokes it.
func (s *Store) AssignRole(ctx context.Context, id uint, role access.Role) error {
	res := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.InfoContext(ctx, "user role assigned", "id", id, "role", role)
	return nil
}

// Delete soft-deletes a user.
func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.InfoContext(ctx, "user deleted", "id", id)
	return nil
}

// Get loads a user.
func (s *Store) Get(ctx context.Context, id uint) (*User, error) {
	return find(s.db.WithContext(ctx), id)
}

// List returns users ordered by name; term matches name or email.
func (s *Store) List(ctx context.Context, term string) ([]User, error) {
	q := s.db.WithContext(ctx)
	if term = strings.TrimSpace(term); term != "" {
		p := search.Pattern(term)
		q = q.Where("(LOWER(name) LIKE ?"+search.Escape+" OR LOWER(email) LIKE ?"+search.Escape+")", p, p)
	}
	var out []User
	if err := q.Order("name").Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of live users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}

// Authenticate checks an email and password pair.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	var u User
	res := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Limit(1).Find(&u)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to find user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *Store) hash(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func find(tx *gorm.DB, id uint) (*User, error) {
	var u User
	if err := tx.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func emailFree(tx *gorm.DB, email string, except uint) error {
	q := tx.Model(&User{}).Where("email = ?", email)
	if except != 0 {
		q = q.Where("id <> ?", except)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrEmailTaken
	}
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 255 {
		return "", ErrInvalidName
	}
	return name, nil
}

func cleanEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || len(email) > 255 {
		return "", ErrInvalidEmail
	}
	return email, nil
}
