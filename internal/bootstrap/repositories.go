package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/database/postgres"
	"github.com/farmfit/farmfit/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User         repository.User
	Gamification repository.Gamification
	Notification repository.Notification
	Chat         repository.Chat
	Equipment    repository.Equipment
	Market       repository.Market
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         postgres.NewUserRepository(dbPool),
		Gamification: postgres.NewGamificationRepository(dbPool),
		Notification: postgres.NewNotificationRepository(dbPool),
		Chat:         postgres.NewChatRepository(dbPool),
		Equipment:    postgres.NewEquipmentRepository(dbPool),
		Market:       postgres.NewMarketRepository(dbPool),
	}
}
