package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// SignUpInput 注册表单
type SignUpInput struct {
	Username  string `form:"username" json:"username" validate:"required,max=150,username"`
	Email     string `form:"email" json:"email" validate:"omitempty,email"`
	Password  string `form:"password" json:"password" validate:"required,min=8,max=72"`
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
}

// TokenOptions 来自 config.JWT
type TokenOptions struct {
	Secret string
	Expire time.Duration
	Issuer string
}

type AccountService struct {
	users    repository.UserRepository
	validate *validator.Validate
	tokens   TokenOptions
}

func NewAccountService(users repository.UserRepository, tokens TokenOptions) *AccountService {
	if tokens.Expire <= 0 {
		tokens.Expire = 24 * time.Hour
	}
	return &AccountService{users: users, validate: newValidator(), tokens: tokens}
}

var fieldMessages = map[string]string{
	"required": "This field is required.",
	"username": "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.",
	"email":    "Enter a valid email address.",
	"min":      "This value is too short.",
	"max":      "This value is too long.",
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		ve.Add(fe.Field(), msg)
	}
	return ve
}

// SignUp 注册新用户
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		ve := &ValidationError{}
		ve.Add("username", "A user with that username already exists.")
		return nil, ve
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Info("user signed up", zap.String("user", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Authenticate 校验用户名与密码
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// IssueToken 签发 API 使用的 HS256 令牌，sub 为用户 id
func (s *AccountService) IssueToken(u *model.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.tokens.Expire)
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		Issuer:    s.tokens.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.tokens.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken 返回令牌中的用户 id
func (s *AccountService) ParseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.tokens.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.tokens.Issuer))
	}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.tokens.Secret), nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", ErrUnauthenticated
	}
	return claims.Subject, nil
}
