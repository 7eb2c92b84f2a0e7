package usecase

import (
	"errors"
	"log"
	"time"

	"hris-attendance/config"
	"hris-attendance/internal/model"
	"hris-attendance/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthUsecase struct {
	repo repository.UserRepository
}

func NewAuthUsecase(repo repository.UserRepository) *AuthUsecase {
	return &AuthUsecase{repo: repo}
}

// Register hashes the password and stores a new account. The email must not
// belong to an existing account.
func (u *AuthUsecase) Register(fullName, email, password, role string) error {
	if _, err := u.repo.GetByEmail(email); err == nil {
		return ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Status:   "active",
	}
	return u.repo.Create(&user)
}

// Login verifies the credentials and issues a signed session token. The
// returned expiry is in seconds, matching the login response contract.
func (u *AuthUsecase) Login(email, password string) (string, *model.User, int, error) {
	user, err := u.repo.GetByEmail(email)
	if err != nil {
		return "", nil, 0, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, 0, ErrInvalidCredentials
	}

	if user.Status != "active" {
		return "", nil, 0, ErrInactiveAccount
	}

	now := time.Now()
	if err := u.repo.UpdateLastLogin(user.ID, now); err != nil {
		// Not worth failing the login over.
		log.Printf("auth: could not update last login for %s: %v", user.Email, err)
	}
	user.LastLogin = &now

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret())
	if err != nil {
		return "", nil, 0, err
	}

	return token, user, int(tokenTTL.Seconds()), nil
}
