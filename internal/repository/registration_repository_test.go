package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/galsan/jungang-heights-api/internal/domain"
)

func TestSortColumnWhitelist(t *testing.T) {
	cases := []struct {
		requested string
		want      string
	}{
		{"id", "id"},
		{"name", "name"},
		{"phone", "phone"},
		{"interest_type", "interest_type"},
		{"status", "status"},
		{"created_at", "created_at"},
		{"", "created_at"},
		{"updated_at", "created_at"},
		{"created_at; DROP TABLE registrations", "created_at"},
		{"NAME", "created_at"},
	}
	for _, tc := range cases {
		if got := SortColumn(tc.requested); got != tc.want {
			t.Errorf("SortColumn(%q) = %q, want %q", tc.requested, got, tc.want)
		}
	}
}

func TestSortDirection(t *testing.T) {
	cases := []struct {
		requested string
		want      string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"random", "DESC"},
	}
	for _, tc := range cases {
		if got := SortDirection(tc.requested); got != tc.want {
			t.Errorf("SortDirection(%q) = %q, want %q", tc.requested, got, tc.want)
		}
	}
}

// setupTestDB starts a disposable PostgreSQL container and applies the
// schema. Skipped unless TEST_INTEGRATION is set.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:16-alpine"),
		postgres.WithDatabase("heights_test"),
		postgres.WithUsername("heights"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_create_registrations.sql"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return pool
}

func createLead(t *testing.T, repo RegistrationRepository, name, phone, interest string) *domain.Registration {
	t.Helper()
	reg := &domain.Registration{
		Name:         name,
		Phone:        phone,
		InterestType: interest,
		Status:       domain.StatusNew,
	}
	if err := repo.Create(context.Background(), reg); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return reg
}

func TestRepositoryCreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRegistrationRepository(pool)
	ctx := context.Background()

	reg := createLead(t, repo, "홍길동", "010-1234-5678", "59㎡")
	if reg.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if reg.CreatedAt.IsZero() || reg.UpdatedAt.IsZero() {
		t.Error("expected timestamps from the database")
	}

	got, err := repo.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "홍길동" || got.Phone != "010-1234-5678" || got.Status != domain.StatusNew {
		t.Errorf("unexpected row: %+v", got)
	}

	if _, err := repo.GetByID(ctx, reg.ID+100); err != pgx.ErrNoRows {
		t.Errorf("missing id: err = %v, want pgx.ErrNoRows", err)
	}
}

func TestRepositoryListFilterAndCount(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRegistrationRepository(pool)
	ctx := context.Background()

	createLead(t, repo, "홍길동", "010-1111-2222", "59㎡")
	createLead(t, repo, "김철수", "010-3333-4444", "84㎡")
	kim := createLead(t, repo, "김영희", "010-5555-6666", "84㎡, 펜트하우스")

	rows, total, err := repo.List(ctx, ListFilter{Search: "김", Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("search: total = %d rows = %d, want 2/2", total, len(rows))
	}

	rows, total, err = repo.List(ctx, ListFilter{InterestType: "펜트", Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || rows[0].ID != kim.ID {
		t.Errorf("interest filter: total = %d, want the 펜트하우스 row", total)
	}

	// total reflects the filter predicate, not the unfiltered table
	if err := repo.UpdateStatus(ctx, kim.ID, domain.StatusContacted, time.Now()); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	rows, total, err = repo.List(ctx, ListFilter{Status: "contacted", Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Errorf("status filter: total = %d rows = %d, want 1/1", total, len(rows))
	}
}

func TestRepositoryListSortAndPage(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRegistrationRepository(pool)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createLead(t, repo, "이름", "010-1234-5678", "59㎡")
	}

	rows, total, err := repo.List(ctx, ListFilter{SortBy: "id", SortOrder: "asc", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ID >= rows[1].ID {
		t.Error("expected ascending id order")
	}

	// unknown sort key falls back instead of erroring
	if _, _, err := repo.List(ctx, ListFilter{SortBy: "bogus", Limit: 20}); err != nil {
		t.Errorf("unknown sort key: %v", err)
	}
}

func TestRepositoryUpdateStatusAndDelete(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRegistrationRepository(pool)
	ctx := context.Background()

	reg := createLead(t, repo, "홍길동", "010-1234-5678", "59㎡")

	if err := repo.UpdateStatus(ctx, reg.ID, domain.StatusCompleted, time.Now()); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := repo.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.CreatedAt != reg.CreatedAt && !got.CreatedAt.Equal(reg.CreatedAt) {
		t.Error("created_at changed on status update")
	}

	if err := repo.UpdateStatus(ctx, reg.ID+100, domain.StatusNew, time.Now()); err != pgx.ErrNoRows {
		t.Errorf("missing id: err = %v, want pgx.ErrNoRows", err)
	}

	if err := repo.Delete(ctx, reg.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, reg.ID); err != nil {
		t.Fatalf("repeat Delete should be a no-op: %v", err)
	}
}

func TestRepositoryStats(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRegistrationRepository(pool)
	ctx := context.Background()

	a := createLead(t, repo, "a", "010-1111-1111", "59㎡")
	createLead(t, repo, "b", "010-2222-2222", "84㎡")
	if err := repo.UpdateStatus(ctx, a.ID, domain.StatusContacted, time.Now()); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := repo.Stats(ctx, startOfDay, now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2", stats.Total)
	}
	if got := stats.New + stats.Contacted + stats.Completed; got != stats.Total {
		t.Errorf("status counts sum = %d, want %d", got, stats.Total)
	}
	if stats.TodayCount != 2 || stats.WeekCount != 2 {
		t.Errorf("today/week = %d/%d, want 2/2", stats.TodayCount, stats.WeekCount)
	}
}
