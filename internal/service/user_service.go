// Package service provides the business logic of the catalog server. Each
// catalog layers entity-specific rules over a generic in-memory store and
// owns all state for its entity type.
package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rrivasl/catalog/internal/domain"
	"github.com/rrivasl/catalog/internal/metrics"
	"github.com/rrivasl/catalog/internal/store"
	"github.com/rrivasl/catalog/internal/validation"
)

// Uniqueness index names for the user store. The email index is declared
// first: when one insert violates both, the duplicate-email error wins.
const (
	userIndexEmail    = "email"
	userIndexUsername = "username"
)

// UserService manages the user catalog.
type UserService struct {
	store     *store.Store[domain.User]
	validator *validation.Engine
	logger    zerolog.Logger
}

// NewUserService creates a UserService with an empty backing store.
func NewUserService(validator *validation.Engine, logger zerolog.Logger) *UserService {
	st := store.New(store.Options[domain.User]{
		ID:    func(u *domain.User) int64 { return u.ID },
		SetID: func(u *domain.User, id int64) { u.ID = id },
		Indexes: []store.Index[domain.User]{
			// Email uniqueness is case-insensitive.
			{Name: userIndexEmail, Key: func(u *domain.User) string { return strings.ToLower(u.Email) }},
			{Name: userIndexUsername, Key: func(u *domain.User) string { return u.Username }},
		},
	})
	return &UserService{
		store:     st,
		validator: validator,
		logger:    logger.With().Str("service", "user").Logger(),
	}
}

// CreateUserInput contains the data needed to create a new user.
type CreateUserInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// Create validates the input, enforces username and email uniqueness and
// stores the new user. The status of a new account is always Active,
// regardless of what the caller sends alongside. Returns the stored user
// including its assigned identifier.
func (s *UserService) Create(input CreateUserInput) (*domain.User, error) {
	violations := s.validator.User(validation.UserFields{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Phone:     input.Phone,
	}, true)
	if len(violations) > 0 {
		metrics.CatalogOperations.WithLabelValues("create", "user", "validation_failed").Inc()
		return nil, domain.NewValidationError(violations)
	}

	// Pre-check both keys so the caller gets the specific duplicate error;
	// the insert re-checks atomically under the store lock. Email first,
	// to keep the observed precedence when both collide.
	if _, found, _ := s.store.FindByIndex(userIndexEmail, strings.ToLower(input.Email)); found {
		metrics.CatalogOperations.WithLabelValues("create", "user", "duplicate").Inc()
		return nil, domain.NewDuplicateValueError(domain.ErrDuplicateEmail, input.Email)
	}
	if _, found, _ := s.store.FindByIndex(userIndexUsername, input.Username); found {
		metrics.CatalogOperations.WithLabelValues("create", "user", "duplicate").Inc()
		return nil, domain.NewDuplicateValueError(domain.ErrDuplicateUsername, input.Username)
	}

	user := domain.NewUser(input.Username, input.FirstName, input.LastName, input.Email, input.Password)
	user.Phone = input.Phone

	created, err := s.store.Insert(user)
	if err != nil {
		return nil, mapUserStoreError(err)
	}

	metrics.CatalogOperations.WithLabelValues("create", "user", "ok").Inc()
	metrics.EntityCount.WithLabelValues("user").Set(float64(s.store.Count()))

	s.logger.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Msg("user created")

	return created, nil
}

// FindByID retrieves a user by identifier.
func (s *UserService) FindByID(id int64) (*domain.User, error) {
	user, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// FindByUsername retrieves a user by exact username.
func (s *UserService) FindByUsername(username string) (*domain.User, error) {
	user, found, err := s.store.FindByIndex(userIndexUsername, username)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// FindByEmail retrieves a user by email, case-insensitively.
func (s *UserService) FindByEmail(email string) (*domain.User, error) {
	user, found, err := s.store.FindByIndex(userIndexEmail, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// SearchInput contains the optional user search filters. Zero values mean
// "no filter" for Name and Role; Active is tri-state via pointer.
type SearchInput struct {
	// Name filters by case-sensitive substring match against the given name.
	Name string

	// Role is accepted for wire compatibility but has no backing attribute
	// on the user entity; it never filters anything.
	Role string

	// Active, when set, partitions by status: true keeps only Active users,
	// false keeps everything else (Inactive and Blocked alike).
	Active *bool
}

// Search returns the users matching every supplied filter, sorted in
// ascending order of family name.
func (s *UserService) Search(input SearchInput) []*domain.User {
	var result []*domain.User
	for _, u := range s.store.List() {
		if input.Name != "" && !strings.Contains(u.FirstName, input.Name) {
			continue
		}
		if input.Active != nil && *input.Active != u.IsActive() {
			continue
		}
		result = append(result, u)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastName < result[j].LastName
	})
	return result
}

// ListAll returns a snapshot of every user in insertion order.
func (s *UserService) ListAll() []*domain.User {
	return s.store.List()
}

// UpdateUserInput contains the mutable user fields for an update.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Status    domain.UserStatus
}

// Update overwrites the mutable fields of an existing user. First name,
// last name, phone and status are applied unconditionally; the email is
// re-checked for uniqueness when it differs from the stored one. The
// identifier and password are never touched.
func (s *UserService) Update(id int64, input UpdateUserInput) (*domain.User, error) {
	var violations []string
	if !input.Status.Valid() {
		violations = append(violations, "status must be one of ACTIVE, INACTIVE, BLOCKED")
	}
	violations = append(violations, s.validator.UserProfile(validation.UserFields{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	})...)
	if len(violations) > 0 {
		metrics.CatalogOperations.WithLabelValues("update", "user", "validation_failed").Inc()
		return nil, domain.NewValidationError(violations)
	}

	updated, err := s.store.Update(id, func(u *domain.User) {
		u.FirstName = input.FirstName
		u.LastName = input.LastName
		u.Phone = input.Phone
		u.Status = input.Status
		u.Email = input.Email
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("update", "user", "error").Inc()
		return nil, mapUserStoreError(err)
	}

	metrics.CatalogOperations.WithLabelValues("update", "user", "ok").Inc()

	s.logger.Info().
		Int64("user_id", updated.ID).
		Msg("user updated")

	return updated, nil
}

// Deactivate sets the user's status to Inactive. Deactivating an already
// inactive user succeeds and leaves it Inactive; users are never
// physically removed from the catalog.
func (s *UserService) Deactivate(id int64) error {
	updated, err := s.store.Update(id, func(u *domain.User) {
		u.Status = domain.UserStatusInactive
	})
	if err != nil {
		return mapUserStoreError(err)
	}

	metrics.CatalogOperations.WithLabelValues("deactivate", "user", "ok").Inc()

	s.logger.Info().
		Int64("user_id", updated.ID).
		Msg("user deactivated")

	return nil
}

// Authenticate verifies the credentials and returns the account. The
// failure reason is typed (unknown user, wrong password, inactive
// account) for callers that log or branch on it; anything facing the
// network must collapse all three into one opaque rejection.
func (s *UserService) Authenticate(username, password string) (*domain.User, error) {
	user, found, err := s.store.FindByIndex(userIndexUsername, username)
	if err != nil || !found {
		return nil, domain.ErrUserNotFound
	}
	if user.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.CanAuthenticate() {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

// ValidateCredentials reports whether the username exists, the password
// matches the stored one exactly, and the account is Active. It never
// reveals which of the three checks failed.
func (s *UserService) ValidateCredentials(username, password string) bool {
	_, err := s.Authenticate(username, password)
	return err == nil
}

// ExistsByEmail reports whether any user owns the email, case-insensitively.
func (s *UserService) ExistsByEmail(email string) bool {
	_, found, _ := s.store.FindByIndex(userIndexEmail, strings.ToLower(email))
	return found
}

// ExistsByUsername reports whether any user owns the username.
func (s *UserService) ExistsByUsername(username string) bool {
	_, found, _ := s.store.FindByIndex(userIndexUsername, username)
	return found
}

// mapUserStoreError translates store-level errors into the user catalog's
// error taxonomy, carrying the colliding value on duplicates.
func mapUserStoreError(err error) error {
	var dup *store.DuplicateKeyError
	if errors.As(err, &dup) {
		switch dup.Index {
		case userIndexEmail:
			return domain.NewDuplicateValueError(domain.ErrDuplicateEmail, dup.Key)
		case userIndexUsername:
			return domain.NewDuplicateValueError(domain.ErrDuplicateUsername, dup.Key)
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
