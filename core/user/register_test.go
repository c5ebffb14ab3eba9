package user

import (
	"context"
	"strings"
	"testing"

	"github.com/trezcool/shule/core"
)

// fakeRepo is a minimal map-backed Repository for in-package tests.
type fakeRepo struct {
	users map[string]User // keyed by ID
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo(users ...User) *fakeRepo {
	repo := &fakeRepo{users: make(map[string]User)}
	for _, usr := range users {
		repo.users[usr.ID] = usr
	}
	return repo
}

func (r *fakeRepo) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []User, exec ...core.DBExecutor) error {
	excluded := func(usr User) bool {
		for _, ex := range excludedUsers {
			if ex.ID == usr.ID {
				return true
			}
		}
		return false
	}
	for _, usr := range r.users {
		if excluded(usr) {
			continue
		}
		if strings.EqualFold(usr.Username, username) {
			return ErrUsernameExists
		}
		if strings.EqualFold(usr.Email, email) {
			return ErrEmailExists
		}
	}
	return nil
}

func (r *fakeRepo) CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error) {
	if err := r.CheckUsernameUniqueness(ctx, usr.Username, usr.Email, nil); err != nil {
		return User{}, ErrUserExists
	}
	r.users[usr.ID] = usr
	return usr, nil
}

func (r *fakeRepo) GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error) {
	for _, usr := range r.users {
		switch {
		case filter.ID != "" && usr.ID == filter.ID,
			filter.Username != "" && strings.EqualFold(usr.Username, filter.Username),
			filter.Email != "" && strings.EqualFold(usr.Email, filter.Email):
			return usr, nil
		}
		for _, uoe := range filter.UsernameOrEmail {
			if strings.EqualFold(usr.Username, uoe) || strings.EqualFold(usr.Email, uoe) {
				return usr, nil
			}
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeRepo) QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]User, error) {
	users := make([]User, 0, len(r.users))
	for _, usr := range r.users {
		users = append(users, usr)
	}
	return users, nil
}

func (r *fakeRepo) UpdateUser(ctx context.Context, usr User, isActive *bool, exec ...core.DBExecutor) (User, error) {
	orig, ok := r.users[usr.ID]
	if !ok {
		return User{}, ErrNotFound
	}
	if usr.Username != "" {
		orig.Username = usr.Username
	}
	if usr.Email != "" {
		orig.Email = usr.Email
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	orig.LastLogin = usr.LastLogin
	r.users[usr.ID] = orig
	return orig, nil
}

func (r *fakeRepo) UpdateOrCreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error) {
	r.users[usr.ID] = usr
	return usr, nil
}

func (r *fakeRepo) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	for _, id := range ids {
		delete(r.users, id)
	}
	return nil
}

func TestRegisterValidate(t *testing.T) {
	taken := User{
		ID:       "88c9a5c6-7536-4e0a-9f8f-1e913966f1a9",
		Username: "std001",
		Email:    "std001@test.test",
		IsActive: true,
	}
	svc := NewServiceMock(nil, newFakeRepo(taken), nil)

	tests := []struct {
		name    string
		reg     Register
		wantErr error
	}{
		{
			name:    "missing username",
			reg:     Register{Email: "a@test.test", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: errMissingFields,
		},
		{
			name:    "missing password",
			reg:     Register{Username: "newkid", Email: "a@test.test", ConfirmPassword: "secret1"},
			wantErr: errMissingFields,
		},
		{
			name:    "password mismatch",
			reg:     Register{Username: "newkid", Email: "a@test.test", Password: "secret1", ConfirmPassword: "secret2"},
			wantErr: errPasswordMismatch,
		},
		{
			name:    "password too short",
			reg:     Register{Username: "newkid", Email: "a@test.test", Password: "pwd", ConfirmPassword: "pwd"},
			wantErr: errPasswordTooShort,
		},
		{
			name: "mismatch beats length", // checks run in order, first failure wins
			reg:  Register{Username: "newkid", Email: "a@test.test", Password: "pwd", ConfirmPassword: "dwp"},

			wantErr: errPasswordMismatch,
		},
		{
			name:    "username taken",
			reg:     Register{Username: "std001", Email: "a@test.test", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: errUsernameTaken,
		},
		{
			name:    "username taken is case-insensitive",
			reg:     Register{Username: "STD001", Email: "a@test.test", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: errUsernameTaken,
		},
		{
			name:    "email taken",
			reg:     Register{Username: "newkid", Email: "std001@test.test", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: errEmailTaken,
		},
		{
			name: "all good",
			reg:  Register{Username: "newkid", Email: "a@test.test", Password: "secret1", ConfirmPassword: "secret1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate(svc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v (%T), want *core.ValidationError", err, err)
			}
			if vErr.Err != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", vErr.Err, tt.wantErr)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	svc := NewServiceMock(nil, newFakeRepo(), nil)

	usr, err := svc.Register(context.Background(), Register{
		Username:        "STD001",
		Email:           "Std001@Test.test",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "First",
		LastName:        "Last",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if usr.Username != "std001" {
		t.Errorf("Username = %v, want std001", usr.Username)
	}
	if usr.Email != "std001@test.test" {
		t.Errorf("Email = %v, want std001@test.test", usr.Email)
	}
	if !usr.IsActive {
		t.Error("IsActive = false, want true")
	}
	if err := usr.CheckPassword("secret1"); err != nil {
		t.Errorf("CheckPassword(secret1) error = %v", err)
	}
	if !usr.IsStudent() {
		t.Errorf("Roles = %v, want the student role", usr.Roles)
	}
	if usr.ID == "" {
		t.Error("ID is empty")
	}

	// duplicate registration with the same username must be rejected
	_, err = svc.Register(context.Background(), Register{
		Username:        "std001",
		Email:           "other@test.test",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Register() error = %v (%T), want *core.ValidationError", err, err)
	}
	if vErr.Err != errUsernameTaken {
		t.Errorf("Register() error = %v, want %v", vErr.Err, errUsernameTaken)
	}
}
