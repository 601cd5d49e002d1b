package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/farmfit/farmfit/internal/database"
	"github.com/farmfit/farmfit/internal/domain"
)

// setupTestDB starts a throwaway Postgres container, applies migrations and
// returns a connected pool. Skips when Docker is unavailable.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *tcpostgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("testuser"),
			tcpostgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Skipf("Skipping integration test: could not start postgres container: %v", err)
	}
	if pgContainer == nil {
		t.Skip("Skipping integration test: container unavailable")
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.Connect(ctx, connStr, database.DefaultPoolConfig())
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}

func TestRepositories_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	gamification := NewGamificationRepository(pool)
	notifications := NewNotificationRepository(pool)
	chat := NewChatRepository(pool)
	equipment := NewEquipmentRepository(pool)

	user, err := users.CreateUser(ctx, "greenacres", "ga@example.com", "free")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected user ID to be set")
	}

	t.Run("UserLookup", func(t *testing.T) {
		got, err := users.GetUserByUsername(ctx, "greenacres")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, got.ID)
		}

		if _, err := users.GetUserByUsername(ctx, "nobody"); err != domain.ErrUserNotFound {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("ProgressSeededOnCreate", func(t *testing.T) {
		p, err := gamification.GetUserProgress(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserProgress failed: %v", err)
		}
		if p.Level != 1 || p.Experience != 0 {
			t.Errorf("expected fresh progress, got level=%d xp=%d", p.Level, p.Experience)
		}
	})

	t.Run("AchievementAwardIsIdempotent", func(t *testing.T) {
		a := domain.Achievement{
			AchievementKey: "first_planting",
			Name:           "First Planting",
			Category:       domain.AchievementCategoryFarming,
			Points:         10,
		}
		if err := gamification.UpsertAchievement(ctx, a); err != nil {
			t.Fatalf("UpsertAchievement failed: %v", err)
		}

		awarded, err := gamification.AwardAchievement(ctx, user.ID, "first_planting")
		if err != nil {
			t.Fatalf("AwardAchievement failed: %v", err)
		}
		if awarded == nil || awarded.Points != 10 {
			t.Fatalf("expected award with 10 points, got %+v", awarded)
		}

		// Second award inserts nothing
		again, err := gamification.AwardAchievement(ctx, user.ID, "first_planting")
		if err != nil {
			t.Fatalf("repeat AwardAchievement failed: %v", err)
		}
		if again != nil {
			t.Errorf("expected nil on repeat award, got %+v", again)
		}

		held, err := gamification.GetUserAchievements(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserAchievements failed: %v", err)
		}
		if len(held) != 1 {
			t.Errorf("expected 1 achievement, got %d", len(held))
		}
	})

	t.Run("QuestLifecycle", func(t *testing.T) {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		quest, err := gamification.CreateQuest(ctx, domain.QuestTemplate{
			QuestKey:        "plant_three",
			QuestType:       domain.QuestTypePlantCrop,
			Description:     "Plant 3 crops",
			BaseRequirement: 3,
			BaseRewardXP:    50,
			BaseRewardCoins: 20,
		}, today)
		if err != nil {
			t.Fatalf("CreateQuest failed: %v", err)
		}

		if err := gamification.EnsureQuestProgress(ctx, user.ID, quest.QuestID); err != nil {
			t.Fatalf("EnsureQuestProgress failed: %v", err)
		}
		if err := gamification.IncrementQuestProgress(ctx, user.ID, quest.QuestID, 3); err != nil {
			t.Fatalf("IncrementQuestProgress failed: %v", err)
		}
		if err := gamification.CompleteQuest(ctx, user.ID, quest.QuestID); err != nil {
			t.Fatalf("CompleteQuest failed: %v", err)
		}
		if err := gamification.ClaimQuestReward(ctx, user.ID, quest.QuestID); err != nil {
			t.Fatalf("ClaimQuestReward failed: %v", err)
		}
		if err := gamification.ClaimQuestReward(ctx, user.ID, quest.QuestID); err != domain.ErrAlreadyClaimed {
			t.Errorf("expected ErrAlreadyClaimed on double claim, got %v", err)
		}
	})

	t.Run("NotificationRoundTrip", func(t *testing.T) {
		n := &domain.Notification{
			UserID:    user.ID,
			Type:      domain.NotificationTypeWeatherAlert,
			Severity:  domain.SeverityCritical,
			Title:     "Frost warning",
			Message:   "Temperature dropping below 0C tonight",
			Data:      map[string]interface{}{"temperature": -2.5},
			ExpiresAt: time.Now().Add(domain.NotificationTTL),
		}
		if err := notifications.CreateNotification(ctx, n); err != nil {
			t.Fatalf("CreateNotification failed: %v", err)
		}

		list, err := notifications.ListForUser(ctx, user.ID, true, 10)
		if err != nil {
			t.Fatalf("ListForUser failed: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 unread notification, got %d", len(list))
		}

		if err := notifications.MarkRead(ctx, n.ID, time.Now()); err != nil {
			t.Fatalf("MarkRead failed: %v", err)
		}
		unread, err := notifications.ListForUser(ctx, user.ID, true, 10)
		if err != nil {
			t.Fatalf("ListForUser failed: %v", err)
		}
		if len(unread) != 0 {
			t.Errorf("expected 0 unread after MarkRead, got %d", len(unread))
		}

		// An unread notification sorts ahead of a newer read one
		pending := &domain.Notification{
			UserID:    user.ID,
			Type:      domain.NotificationTypeWeatherAlert,
			Severity:  domain.SeverityWarning,
			Title:     "Wind advisory",
			ExpiresAt: time.Now().Add(domain.NotificationTTL),
		}
		if err := notifications.CreateNotification(ctx, pending); err != nil {
			t.Fatalf("CreateNotification failed: %v", err)
		}
		seen := &domain.Notification{
			UserID:    user.ID,
			Type:      domain.NotificationTypeWeatherAlert,
			Severity:  domain.SeverityInfo,
			Title:     "Rain expected",
			ExpiresAt: time.Now().Add(domain.NotificationTTL),
		}
		if err := notifications.CreateNotification(ctx, seen); err != nil {
			t.Fatalf("CreateNotification failed: %v", err)
		}
		if err := notifications.MarkRead(ctx, seen.ID, time.Now()); err != nil {
			t.Fatalf("MarkRead failed: %v", err)
		}

		all, err := notifications.ListForUser(ctx, user.ID, false, 10)
		if err != nil {
			t.Fatalf("ListForUser failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 notifications, got %d", len(all))
		}
		if all[0].ID != pending.ID || all[0].Read {
			t.Errorf("expected the unread notification first, got id=%s read=%v", all[0].ID, all[0].Read)
		}
	})

	t.Run("ChatMembership", func(t *testing.T) {
		room := &domain.ChatRoom{Name: "hemp-growers", Topic: "CBD varieties", CreatedBy: user.ID}
		if err := chat.CreateRoom(ctx, room); err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}

		// Creator is auto-joined
		member, err := chat.IsMember(ctx, room.ID, user.ID)
		if err != nil {
			t.Fatalf("IsMember failed: %v", err)
		}
		if !member {
			t.Error("expected creator to be a member")
		}

		msg := &domain.ChatMessage{RoomID: room.ID, UserID: user.ID, Body: "hello"}
		if err := chat.InsertMessage(ctx, msg); err != nil {
			t.Fatalf("InsertMessage failed: %v", err)
		}

		messages, err := chat.ListMessages(ctx, room.ID, time.Now().Add(time.Minute), 50)
		if err != nil {
			t.Fatalf("ListMessages failed: %v", err)
		}
		if len(messages) != 1 || messages[0].Username != "greenacres" {
			t.Errorf("expected 1 message from greenacres, got %+v", messages)
		}
	})

	t.Run("EquipmentMaintenanceDue", func(t *testing.T) {
		due := time.Now().Add(24 * time.Hour)
		e := &domain.Equipment{
			Name:            "Irrigator 3000",
			Type:            "irrigation",
			Status:          domain.EquipmentStatusOperational,
			OwnerID:         user.ID,
			NextMaintenance: &due,
		}
		if err := equipment.CreateEquipment(ctx, e); err != nil {
			t.Fatalf("CreateEquipment failed: %v", err)
		}

		items, err := equipment.ListMaintenanceDue(ctx, time.Now().Add(domain.MaintenanceDueWindow))
		if err != nil {
			t.Fatalf("ListMaintenanceDue failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item due, got %d", len(items))
		}

		// Offline equipment drops out of the due list
		if err := equipment.UpdateStatus(ctx, e.ID, domain.EquipmentStatusOffline, nil); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		items, err = equipment.ListMaintenanceDue(ctx, time.Now().Add(domain.MaintenanceDueWindow))
		if err != nil {
			t.Fatalf("ListMaintenanceDue failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected 0 items due, got %d", len(items))
		}
	})
}
