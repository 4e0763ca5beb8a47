package usecase

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/pkg/jwt"
	"newsdesk/pkg/logger"
	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*entity.Author, string, error)
	Me(ctx context.Context, authorID string) (*entity.Author, error)
}

type authUseCase struct {
	authorRepo persistent.AuthorRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(authorRepo persistent.AuthorRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		authorRepo: authorRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.Author, string, error) {
	author, err := uc.authorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrAuthorNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load author: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(author.ID, string(author.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	author.PasswordHash = ""
	return author, token, nil
}

func (uc *authUseCase) Me(ctx context.Context, authorID string) (*entity.Author, error) {
	author, err := uc.authorRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	author.PasswordHash = ""
	return author, nil
}

// HashPassword is used when seeding authors.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
