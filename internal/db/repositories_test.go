package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/cefalog/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "cefalog-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func seedUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", CreatedAt: time.Now().UTC()}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func seedEpisode(t *testing.T, repo *EpisodeRepository, userID uint, startedAt time.Time, endedAt *time.Time) models.Episode {
	t.Helper()

	episode := models.Episode{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Intensity: 5,
		Quality:   models.QualityOther,
		Zones:     []string{models.ZoneForehead},
		Triggers:  []string{"stress"},
	}
	if err := repo.Create(&episode); err != nil {
		t.Fatalf("create episode: %v", err)
	}
	return episode
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewEpisodeRepository(database)
	user := seedUser(t, database, "mara@example.com")

	early := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	seedEpisode(t, repo, user.ID, early, &early)
	seedEpisode(t, repo, user.ID, late, &late)

	episodes, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(episodes))
	}
	if !episodes[0].StartedAt.After(episodes[1].StartedAt) {
		t.Errorf("expected newest first, got %v then %v", episodes[0].StartedAt, episodes[1].StartedAt)
	}
	if len(episodes[0].Zones) != 1 || episodes[0].Zones[0] != models.ZoneForehead {
		t.Errorf("expected serialized zones to round-trip, got %v", episodes[0].Zones)
	}
}

func TestListByUserRangeBounds(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewEpisodeRepository(database)
	user := seedUser(t, database, "mara@example.com")

	for _, day := range []int{1, 10, 20} {
		startedAt := time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC)
		seedEpisode(t, repo, user.ID, startedAt, &startedAt)
	}

	from := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	episodes, err := repo.ListByUserRange(user.ID, &from, &to)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("expected 1 episode in range, got %d", len(episodes))
	}
	if episodes[0].StartedAt.Day() != 10 {
		t.Errorf("unexpected episode %v", episodes[0].StartedAt)
	}

	all, err := repo.ListByUserRange(user.ID, nil, nil)
	if err != nil {
		t.Fatalf("list unbounded: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 episodes without bounds, got %d", len(all))
	}
}

func TestFindOpenForUserPrefersNewest(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewEpisodeRepository(database)
	user := seedUser(t, database, "mara@example.com")

	early := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	seedEpisode(t, repo, user.ID, early, nil)
	newest := seedEpisode(t, repo, user.ID, late, nil)

	open, found, err := repo.FindOpenForUser(user.ID)
	if err != nil {
		t.Fatalf("find open: %v", err)
	}
	if !found || open.ID != newest.ID {
		t.Errorf("expected newest open episode %s, got %+v found=%v", newest.ID, open.ID, found)
	}

	ended := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	open.EndedAt = &ended
	if err := repo.Save(&open); err != nil {
		t.Fatalf("close episode: %v", err)
	}

	remaining, found, err := repo.FindOpenForUser(user.ID)
	if err != nil {
		t.Fatalf("find open after close: %v", err)
	}
	if !found || !remaining.StartedAt.Equal(early) {
		t.Errorf("expected the older open episode, got %+v found=%v", remaining.StartedAt, found)
	}
}

func TestEpisodeScopingAndDelete(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewEpisodeRepository(database)
	owner := seedUser(t, database, "mara@example.com")
	other := seedUser(t, database, "other@example.com")

	startedAt := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	episode := seedEpisode(t, repo, owner.ID, startedAt, &startedAt)

	_, found, err := repo.FindByIDForUser(other.ID, episode.ID)
	if err != nil {
		t.Fatalf("foreign lookup: %v", err)
	}
	if found {
		t.Error("expected foreign lookup to miss")
	}

	if err := repo.DeleteByIDForUser(other.ID, episode.ID); err != nil {
		t.Fatalf("foreign delete: %v", err)
	}
	if _, found, _ := repo.FindByIDForUser(owner.ID, episode.ID); !found {
		t.Error("expected foreign delete to leave the row in place")
	}

	if err := repo.DeleteByIDForUser(owner.ID, episode.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := repo.FindByIDForUser(owner.ID, episode.ID); found {
		t.Error("expected row to be gone")
	}
}

func TestUserRepositoryEmailNormalizationAndAccountDeletion(t *testing.T) {
	database := openTestDatabase(t)
	repos := NewRepositories(database)
	user := seedUser(t, database, "mara@example.com")

	found, err := repos.Users.FindByNormalizedEmail("mara@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, found.ID)
	}

	exists, err := repos.Users.ExistsByNormalizedEmail("mara@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}

	startedAt := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	seedEpisode(t, repos.Episodes, user.ID, startedAt, &startedAt)

	if err := repos.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := repos.Users.FindByID(user.ID); err == nil {
		t.Error("expected user lookup to fail after deletion")
	}
	episodes, err := repos.Episodes.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(episodes) != 0 {
		t.Errorf("expected episodes to be removed, got %d", len(episodes))
	}
}
