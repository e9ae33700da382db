package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUserNotFound         = errors.New("user not found")
)

const tokenIssuer = "lifttrack"

// AuthService is the identity and profile port.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// ParseToken validates a token and returns the user ID it was issued for.
	ParseToken(token string) (primitive.ObjectID, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, userID primitive.ObjectID) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) (AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 30 * 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}, nil
}

// Register creates a user with the default profile. An empty name becomes
// the default display name.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password cannot be empty", ErrValidationFailed)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email %q", ErrValidationFailed, email)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultDisplayName
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		DisplayName:  name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Profile:      domain.UserProfile{}.WithDefaults(),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// lost a race against another registration of the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		err = fmt.Errorf("%w: email and password cannot be empty", ErrValidationFailed)
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	user.Profile = user.Profile.WithDefaults()
	return token, user, nil
}

func (s *authService) ParseToken(token string) (primitive.ObjectID, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return userID, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return s.user(ctx, userID)
}

// Profile returns the user's preferences with defaults filled in.
func (s *authService) Profile(ctx context.Context, userID primitive.ObjectID) (domain.UserProfile, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return user.Profile, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*update.DisplayName)
		if user.DisplayName == "" {
			user.DisplayName = domain.DefaultDisplayName
		}
	}
	if update.Units != nil {
		if !update.Units.Valid() {
			return nil, fmt.Errorf("%w: unknown unit %q", ErrValidationFailed, *update.Units)
		}
		user.Profile.Units = *update.Units
	}
	if update.DefaultRestTimer != nil {
		if *update.DefaultRestTimer <= 0 {
			return nil, fmt.Errorf("%w: rest timer must be positive", ErrValidationFailed)
		}
		user.Profile.DefaultRestTimer = *update.DefaultRestTimer
	}
	if update.PhotoURL != nil {
		user.Profile.PhotoURL = *update.PhotoURL
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, user.DisplayName, user.Profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) user(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	if user.DisplayName == "" {
		user.DisplayName = domain.DefaultDisplayName
	}
	user.Profile = user.Profile.WithDefaults()
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
