package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/internal/models"
	"gorm.io/gorm"
)

// UserService implements the user lifecycle: signup, reads that refuse
// deactivated users, partial updates, and one-way soft deletion.
type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

type UserOption func(*UserService)

// WithUserClock overrides the timestamp source, used by tests.
func WithUserClock(clock func() time.Time) UserOption {
	return func(s *UserService) {
		if clock != nil {
			s.now = clock
		}
	}
}

func NewUserService(db *gorm.DB, opts ...UserOption) *UserService {
	s := &UserService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new active user. Email uniqueness is checked with an
// exact match before the insert, so a conflict never writes a row.
func (s *UserService) Create(name, email string) (*models.User, error) {
	user := models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Active:    true,
		CreatedAt: s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrUserAlreadyExists, email)
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Get returns the user with the given id. Deactivated users are not readable:
// the lookup fails with ErrUserInactive instead of returning the row.
func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User

	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return nil, err
	}

	if !user.Active {
		return nil, fmt.Errorf("%w: %s", ErrUserInactive, id)
	}

	return &user, nil
}

// Update applies partial changes to name and email. Blank or whitespace-only
// values mean "leave this field alone". A changed email must not belong to
// another user.
func (s *UserService) Update(id uuid.UUID, name, email string) (*models.User, error) {
	var user models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, id)
			}
			return err
		}

		if email != "" && email != user.Email {
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: %s", ErrUserAlreadyExists, email)
			}
		}

		if strings.TrimSpace(name) != "" {
			user.Name = name
		}
		if strings.TrimSpace(email) != "" {
			user.Email = email
		}

		now := s.now()
		user.UpdatedAt = &now

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Deactivate soft-deletes a user. The transition is one-way: there is no
// reactivation, and a second call fails with ErrUserAlreadyInactive.
func (s *UserService) Deactivate(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, id)
			}
			return err
		}

		if !user.Active {
			return fmt.Errorf("%w: %s", ErrUserAlreadyInactive, id)
		}

		now := s.now()
		user.Active = false
		user.DeletedAt = &now
		user.UpdatedAt = &now

		return tx.Save(&user).Error
	})
}
