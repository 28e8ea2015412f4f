package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrNotAdmin       = errors.New("the admin username is held by a non admin user")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username string) error
		// CreateUser returns ErrUsernameExists when the username is already taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByUsername(ctx context.Context, username string) (User, error)
		UpdateUserBalance(ctx context.Context, id, balance int) (User, error)
		UpdateUserPassword(ctx context.Context, id int, pwdHash []byte) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func usernameTaken(err error) error {
	return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
}

func (svc *Service) CheckUniqueness(ctx context.Context, uname string) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return usernameTaken(err)
		}
		return errors.Wrap(err, "checking username uniqueness")
	}
	return nil
}

// Create registers a student with the default balance.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	usr := User{
		Username:  core.CleanString(nu.Username, true /* lower */),
		Balance:   DefaultBalance,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return User{}, usernameTaken(err)
		}
		return User{}, err
	}
	return usr, nil
}

// EnsureAdmin creates the administrator account unless it already exists.
// The returned bool reports whether a new account was created.
func (svc *Service) EnsureAdmin(ctx context.Context, pwd string) (User, bool, error) {
	usr, err := svc.repo.GetUserByUsername(ctx, AdminUsername)
	switch {
	case err == nil:
		if !usr.IsAdmin {
			return User{}, false, ErrNotAdmin
		}
		return usr, false, nil
	case !errors.Is(err, ErrNotFound):
		return User{}, false, errors.Wrap(err, "finding admin")
	}

	usr = User{
		Username:  AdminUsername,
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	}
	if err = usr.SetPassword(pwd); err != nil {
		return User{}, false, errors.Wrap(err, "hashing password")
	}
	usr, err = svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Is(err, ErrUsernameExists) { // seeded concurrently
			usr, err = svc.repo.GetUserByUsername(ctx, AdminUsername)
			return usr, false, err
		}
		return User{}, false, errors.Wrap(err, "creating admin")
	}
	return usr, true, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

// QueryStudents returns all non admin users.
func (svc *Service) QueryStudents(ctx context.Context) ([]User, error) {
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	students := users[:0]
	for _, usr := range users {
		if !usr.IsAdmin {
			students = append(students, usr)
		}
	}
	return students, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) SetBalance(ctx context.Context, id, amount int) (User, error) {
	return svc.repo.UpdateUserBalance(ctx, id, amount)
}

// PayFees clears the outstanding balance of the user.
func (svc *Service) PayFees(ctx context.Context, id int) (User, error) {
	return svc.SetBalance(ctx, id, 0)
}

func (svc *Service) ResetPassword(ctx context.Context, uname, pwd string) error {
	usr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return svc.repo.UpdateUserPassword(ctx, usr.ID, usr.PasswordHash)
}
