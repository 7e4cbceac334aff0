package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rasika1975/socialapp/internal/config"
	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/rabbitmq"
	"github.com/Rasika1975/socialapp/internal/repository"
	"github.com/Rasika1975/socialapp/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 10

type authService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher Publisher
	secret    []byte
	expiry    time.Duration
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, publisher Publisher, jwtConfig config.JWT) Auth {
	return &authService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		secret:    jwtConfig.Secret,
		expiry:    jwtConfig.Expiry,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpRequest) (*dto.AuthResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingSignUpFields
	}

	_, err := s.repo.Users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, ErrInternal
	}

	createdUser, err := s.repo.Users.Create(ctx, model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		s.logger.Sugar().Errorf("failed to create user(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	token, err := s.issueToken(createdUser)
	if err != nil {
		return nil, err
	}

	publishJSON(ctx, s.logger, s.publisher, rabbitmq.USER_REGISTERED_QUEUE, dto.UserRegisteredEvent{
		ID:       createdUser.ID,
		Username: createdUser.Username,
		Email:    createdUser.Email,
	})

	return dto.AuthResponseFromUser(*createdUser, token), nil
}

func (s *authService) SignIn(ctx context.Context, input dto.SignInRequest) (*dto.AuthResponse, error) {
	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingSignInFields
	}

	user, err := s.repo.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return dto.AuthResponseFromUser(*user, token), nil
}

func (s *authService) ParseToken(token string) (*model.Identity, error) {
	claims, err := utils.DecodeJWT(token, s.secret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &model.Identity{
		ID:       claims.ID,
		Username: claims.Username,
	}, nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	token, err := utils.GenerateJWT(s.secret, user.ID, user.Username, s.expiry)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt for user(%s): %s", user.ID, err.Error())
		return "", ErrInternal
	}

	return token, nil
}
