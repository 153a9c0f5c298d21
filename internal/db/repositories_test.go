package db

import (
	"context"
	"testing"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
)

func TestSeedDefaultsRunsOnce(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	seeded, err := SeedDefaults(ctx, database, SeedOptions{})
	if err != nil || !seeded {
		t.Fatalf("expected first seed to run, got seeded=%v err=%v", seeded, err)
	}
	seeded, err = SeedDefaults(ctx, database, SeedOptions{})
	if err != nil || seeded {
		t.Fatalf("expected second seed to be skipped, got seeded=%v err=%v", seeded, err)
	}

	repositories := NewRepositories(database)
	user, found, err := repositories.Users.FindByNormalizedEmail(ctx, DefaultUserEmail)
	if err != nil || !found {
		t.Fatalf("expected seeded user, found=%v err=%v", found, err)
	}
	if user.CanLogin() {
		t.Fatal("expected seeded user without password hash to be unable to log in")
	}

	limit, found, err := repositories.Limits.FindLatest(ctx, user.ID)
	if err != nil || !found || limit.LimitAmount != models.DefaultDailyLimit {
		t.Fatalf("expected default limit row, got %+v found=%v err=%v", limit, found, err)
	}
}

func TestUserEmailLookupIsCaseInsensitive(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := models.User{Name: "Ann", Email: "Ann@Example.com", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, &user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	found, ok, err := repo.FindByNormalizedEmail(ctx, "ann@example.com")
	if err != nil || !ok || found.ID != user.ID {
		t.Fatalf("expected lookup by normalized email, got %+v ok=%v err=%v", found, ok, err)
	}

	if err := repo.UpdatePasswordHash(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("update password hash: %v", err)
	}
	reloaded, _, err := repo.FindByID(ctx, user.ID)
	if err != nil || reloaded.PasswordHash != "new-hash" {
		t.Fatalf("expected updated hash, got %q err=%v", reloaded.PasswordHash, err)
	}
}

func TestDrinkDeleteIsRestrictedByIntakes(t *testing.T) {
	database := openTestDatabase(t)
	seedTestDatabase(t, database)
	repositories := NewRepositories(database)
	ctx := context.Background()

	intake := models.Intake{UserID: 1, DrinkID: 1, Servings: 1, TotalCaffeine: 63, Timestamp: time.Now().Unix()}
	if err := repositories.Intakes.Create(ctx, &intake); err != nil {
		t.Fatalf("create intake: %v", err)
	}

	count, err := repositories.Drinks.CountIntakes(ctx, 1)
	if err != nil || count != 1 {
		t.Fatalf("expected one referencing intake, got %d err=%v", count, err)
	}

	err = repositories.Drinks.Delete(ctx, 1)
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}

	if err := repositories.Intakes.Delete(ctx, &intake); err != nil {
		t.Fatalf("delete intake: %v", err)
	}
	if err := repositories.Drinks.Delete(ctx, 1); err != nil {
		t.Fatalf("expected delete to succeed once unreferenced, got %v", err)
	}
	if _, found, _ := repositories.Drinks.FindByID(ctx, 1); found {
		t.Fatal("expected drink to be gone")
	}
}

func TestDrinkListAndSave(t *testing.T) {
	database := openTestDatabase(t)
	seedTestDatabase(t, database)
	repo := NewDrinkRepository(database)
	ctx := context.Background()

	drinks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list drinks: %v", err)
	}
	if len(drinks) != 3 || drinks[0].Name != "Drip" || drinks[2].Name != "Latte" {
		t.Fatalf("expected drinks ordered by name, got %+v", drinks)
	}

	drink := drinks[1]
	drink.Icon = "cup"
	if err := repo.Save(ctx, &drink); err != nil {
		t.Fatalf("save drink: %v", err)
	}
	reloaded, found, err := repo.FindByID(ctx, drink.ID)
	if err != nil || !found || reloaded.Icon != "cup" {
		t.Fatalf("expected saved icon, got %+v found=%v err=%v", reloaded, found, err)
	}
}

func TestLatestLimitWinsByCreationTime(t *testing.T) {
	database := openTestDatabase(t)
	seedTestDatabase(t, database)
	repo := NewDailyLimitRepository(database)
	ctx := context.Background()

	base := time.Now().UTC().Add(time.Hour)
	for index, amount := range []int{300, 200} {
		limit := models.DailyLimit{UserID: 1, LimitAmount: amount, CreatedAt: base.Add(time.Duration(index) * time.Minute)}
		if err := repo.Create(ctx, &limit); err != nil {
			t.Fatalf("create limit: %v", err)
		}
	}

	latest, found, err := repo.FindLatest(ctx, 1)
	if err != nil || !found || latest.LimitAmount != 200 {
		t.Fatalf("expected latest limit 200, got %+v found=%v err=%v", latest, found, err)
	}
	history, err := repo.ListByUser(ctx, 1)
	if err != nil || len(history) != 3 || history[2].LimitAmount != models.DefaultDailyLimit {
		t.Fatalf("unexpected history %+v err=%v", history, err)
	}

	if _, found, err := repo.FindLatest(ctx, 99); err != nil || found {
		t.Fatalf("expected no limit for unknown user, found=%v err=%v", found, err)
	}
}

func TestIntakeSumsUseHalfOpenWindows(t *testing.T) {
	database := openTestDatabase(t)
	seedTestDatabase(t, database)
	repo := NewIntakeRepository(database)
	ctx := context.Background()

	for _, intake := range []models.Intake{
		{UserID: 1, DrinkID: 1, Servings: 1, TotalCaffeine: 63, Timestamp: 1000},
		{UserID: 1, DrinkID: 2, Servings: 1, TotalCaffeine: 95, Timestamp: 1500},
		{UserID: 1, DrinkID: 1, Servings: 2, TotalCaffeine: 126, Timestamp: 2000},
	} {
		intake := intake
		if err := repo.Create(ctx, &intake); err != nil {
			t.Fatalf("create intake: %v", err)
		}
	}

	total, err := repo.SumBetween(ctx, 1, 1000, 2000)
	if err != nil || total != 158 {
		t.Fatalf("expected 158 in [1000,2000), got %d err=%v", total, err)
	}
	since, err := repo.SumSince(ctx, 1, 1500)
	if err != nil || since != 221 {
		t.Fatalf("expected 221 since 1500, got %d err=%v", since, err)
	}
	empty, err := repo.SumBetween(ctx, 2, 0, 5000)
	if err != nil || empty != 0 {
		t.Fatalf("expected 0 for user without intake, got %d err=%v", empty, err)
	}

	byDrink, err := repo.SumByDrinkBetween(ctx, 1, 0, 5000)
	if err != nil || len(byDrink) != 2 || byDrink[0].TotalCaffeine != 189 || byDrink[1].TotalCaffeine != 95 {
		t.Fatalf("unexpected per-drink sums %+v err=%v", byDrink, err)
	}

	start := int64(1500)
	listed, err := repo.ListBetween(ctx, 1, &start, nil)
	if err != nil || len(listed) != 2 || listed[0].Timestamp != 1500 {
		t.Fatalf("unexpected listed intakes %+v err=%v", listed, err)
	}
	all, err := repo.ListByUser(ctx, 1)
	if err != nil || len(all) != 3 || all[0].Timestamp != 2000 {
		t.Fatalf("expected newest first, got %+v err=%v", all, err)
	}
	if _, found, err := repo.FindByIDForUser(ctx, all[0].ID, 2); err != nil || found {
		t.Fatalf("expected intake to be hidden from another user, found=%v err=%v", found, err)
	}
}
