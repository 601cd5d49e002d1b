package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/repository"
)

// Username and tier constraints
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	DefaultTierKey    = "free"
)

// Profile cache sizing. Profiles are read on nearly every request; a short
// TTL keeps tier changes from going stale for long.
const (
	ProfileCacheSize = 512
	ProfileCacheTTL  = time.Minute
)

// Log message constants
const (
	LogMsgUserRegistered = "User registered"
	LogMsgTierChanged    = "User tier changed"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type Service interface {
	Register(ctx context.Context, username, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ChangeTier moves the user onto another subscription tier. The tier
	// must exist in the catalog.
	ChangeTier(ctx context.Context, userID, tierKey string) (*domain.User, error)
}

type service struct {
	repo         repository.User
	catalog      catalog.Service
	profileCache *expirable.LRU[string, *domain.User]
}

func NewService(repo repository.User, catalogSvc catalog.Service) Service {
	return &service{
		repo:    repo,
		catalog: catalogSvc,
		profileCache: expirable.NewLRU[string, *domain.User](
			ProfileCacheSize, nil, ProfileCacheTTL),
	}
}

func (s *service) Register(ctx context.Context, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be %d-%d characters",
			domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username may only contain letters, digits and underscores", domain.ErrInvalidInput)
	}

	u, err := s.repo.CreateUser(ctx, username, strings.TrimSpace(email), DefaultTierKey)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered, "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if cached, ok := s.profileCache.Get(userID); ok {
		return cached, nil
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.profileCache.Add(userID, u)
	return u, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *service) ChangeTier(ctx context.Context, userID, tierKey string) (*domain.User, error) {
	if s.catalog != nil {
		if _, err := s.catalog.GetTier(tierKey); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateUserTier(ctx, userID, tierKey); err != nil {
		return nil, err
	}

	// Drop the stale profile before re-reading
	s.profileCache.Remove(userID)

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.profileCache.Add(userID, u)

	logger.FromContext(ctx).Info(LogMsgTierChanged, "user_id", userID, "tier", tierKey)
	return u, nil
}
