package user

import (
	"errors"

	"github.com/trezcool/shule/core"
)

// self-registration failure copy; the first failing check wins and the rest
// are skipped for that request.
var (
	errMissingFields    = errors.New("Please fill in all required fields.")
	errPasswordMismatch = errors.New("Passwords do not match.")
	errPasswordTooShort = errors.New("Password must be at least 6 characters long.")
	errUsernameTaken    = errors.New("Username already exists.")
	errEmailTaken       = errors.New("Email already exists.")
)

const registerPwdMinLen = 6

// Register is a self-service registration submission.
type Register struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// Validate runs the registration checks in strict order: presence, password
// match, password length, username free, email free. It returns on the first
// failure; no account may be created unless it returns nil.
func (r *Register) Validate(svc *Service) error {
	r.Username = core.CleanString(r.Username, true /* lower */)
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.FirstName = core.CleanString(r.FirstName)
	r.LastName = core.CleanString(r.LastName)

	if r.Username == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return core.NewValidationError(errMissingFields)
	}
	if r.Password != r.ConfirmPassword {
		return core.NewValidationError(errPasswordMismatch, core.FieldError{Field: "confirm_password", Error: errPasswordMismatch.Error()})
	}
	if len(r.Password) < registerPwdMinLen {
		return core.NewValidationError(errPasswordTooShort, core.FieldError{Field: "password", Error: errPasswordTooShort.Error()})
	}
	if _, err := svc.GetByUsername(r.Username); err == nil {
		return core.NewValidationError(errUsernameTaken, core.FieldError{Field: "username", Error: errUsernameTaken.Error()})
	} else if err != ErrNotFound {
		return err
	}
	if _, err := svc.GetByEmail(r.Email); err == nil {
		return core.NewValidationError(errEmailTaken, core.FieldError{Field: "email", Error: errEmailTaken.Error()})
	} else if err != ErrNotFound {
		return err
	}
	return nil
}
