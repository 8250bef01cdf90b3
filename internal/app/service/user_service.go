package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/ikkim/shopit-client/internal/api"
	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 일치하지 않습니다.")
	ErrLoginRequired      = errors.New("로그인이 필요한 서비스입니다.")
)

type UserService interface {
	SignUp(ctx context.Context, input model.SignUpInput) (*model.User, error)
	// CheckEmailDuplicate fails open: any transport or server failure is
	// reported as "not a duplicate" so a flaky backend never blocks
	// signup attempts. Deliberate trade-off, not a bug.
	CheckEmailDuplicate(ctx context.Context, email string) bool
	Login(ctx context.Context, credentials model.Credentials) (*model.User, error)
	UpdateProfile(ctx context.Context, email string, patch model.ProfileUpdate) (*model.User, error)
	DeleteAccount(ctx context.Context, email string) error
}

type userService struct {
	client *api.Client
}

func NewUserService(client *api.Client) UserService {
	return &userService{client: client}
}

func (s *userService) SignUp(ctx context.Context, input model.SignUpInput) (*model.User, error) {
	logger.Info("Signing up", map[string]interface{}{
		"email": input.Email,
	})

	now := time.Now()
	payload := model.User{
		Email:     input.Email,
		Username:  input.Username,
		Password:  input.Password,
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	body, err := s.client.Post(ctx, "/users", payload)
	if err != nil {
		logger.Error("Sign up failed", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	var user model.User
	if err := api.DecodeJSON(body, &user); err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

func (s *userService) CheckEmailDuplicate(ctx context.Context, email string) bool {
	params := url.Values{}
	params.Set("email", email)

	body, err := s.client.Get(ctx, "/users", params)
	if err != nil {
		// Fail open: let the signup attempt proceed, the backend still
		// gets the final say.
		logger.Warn("Email duplicate check failed, assuming not duplicate", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return false
	}

	var users []model.User
	if err := api.DecodeJSON(body, &users); err != nil {
		logger.Warn("Email duplicate check returned malformed body, assuming not duplicate", map[string]interface{}{
			"email": email,
		})
		return false
	}
	return len(users) > 0
}

func (s *userService) Login(ctx context.Context, credentials model.Credentials) (*model.User, error) {
	logger.Info("Logging in", map[string]interface{}{
		"email": credentials.Email,
	})

	params := url.Values{}
	params.Set("email", credentials.Email)
	params.Set("password", credentials.Password)

	body, err := s.client.Get(ctx, "/users", params)
	if err != nil {
		logger.Error("Login request failed", err, map[string]interface{}{
			"email": credentials.Email,
		})
		return nil, err
	}

	var users []model.User
	if err := api.DecodeJSON(body, &users); err != nil {
		return nil, err
	}

	// The backend answers credential queries with a result set, not an
	// HTTP failure code; an empty set means the credentials match no user.
	if len(users) == 0 {
		logger.Warn("Login rejected: no matching user", map[string]interface{}{
			"email": credentials.Email,
		})
		return nil, ErrInvalidCredentials
	}

	user := users[0]
	user.Password = ""
	return &user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, patch model.ProfileUpdate) (*model.User, error) {
	if email == "" {
		return nil, ErrLoginRequired
	}

	logger.Info("Updating profile", map[string]interface{}{
		"email": email,
	})

	patch.UpdatedAt = time.Now()
	body, err := s.client.Patch(ctx, "/users/"+url.PathEscape(email), patch)
	if err != nil {
		logger.Error("Profile update failed", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	var user model.User
	if err := api.DecodeJSON(body, &user); err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

func (s *userService) DeleteAccount(ctx context.Context, email string) error {
	if email == "" {
		return ErrLoginRequired
	}

	logger.Info("Deleting account", map[string]interface{}{
		"email": email,
	})

	if _, err := s.client.Delete(ctx, "/users/"+url.PathEscape(email)); err != nil {
		logger.Error("Account deletion failed", err, map[string]interface{}{
			"email": email,
		})
		return err
	}
	return nil
}
