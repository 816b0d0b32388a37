package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/aislescan/aislescan-api/internal/domain/profile"
	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/internal/domain/user"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	userRepo    user.Repository
	profileRepo profile.Repository
	scanRepo    scan.Repository
}

func TestRepoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.userRepo = NewPostgresUserRepo(pool)
	s.profileRepo = NewPostgresProfileRepo(pool)
	s.scanRepo = NewPostgresScanRepo(pool, logger.NewNop())
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		s.pgContainer.Terminate(context.Background())
	}
}

func (s *RepoIntegrationTestSuite) mustCreateUser(email string) *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
	}
	s.Require().NoError(s.userRepo.Create(context.Background(), u))
	return u
}

func (s *RepoIntegrationTestSuite) Test_UserRepo_UniqueEmail() {
	ctx := context.Background()
	u := s.mustCreateUser("unique@example.com")

	dup := &user.User{
		ID:           uuid.New(),
		Email:        "unique@example.com",
		Name:         "Second Writer",
		PasswordHash: "irrelevant",
	}
	err := s.userRepo.Create(ctx, dup)
	s.Require().ErrorIs(err, apperror.ErrConflict)

	// The first row is untouched.
	stored, err := s.userRepo.FindByEmail(ctx, "unique@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, stored.ID)
	s.Equal("Test User", stored.Name)
}

func (s *RepoIntegrationTestSuite) Test_UserRepo_FindByID() {
	ctx := context.Background()
	u := s.mustCreateUser("findbyid@example.com")

	stored, err := s.userRepo.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.Email, stored.Email)
	s.False(stored.CreatedAt.IsZero())

	_, err = s.userRepo.FindByID(ctx, uuid.New())
	s.Require().ErrorIs(err, user.ErrUserNotFound)
}

func (s *RepoIntegrationTestSuite) Test_ProfileRepo_DefaultThenUpsert() {
	ctx := context.Background()
	u := s.mustCreateUser("profile@example.com")

	p, err := s.profileRepo.GetByUserID(ctx, u.ID)
	s.Require().NoError(err)
	s.Empty(p.Allergies)
	s.Nil(p.Goals)
	s.Empty(p.DietaryRestrictions)

	goals := "vegan"
	p.Allergies = []string{"peanuts"}
	p.Goals = &goals
	p.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	stored, err := s.profileRepo.GetByUserID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal([]string{"peanuts"}, stored.Allergies)
	s.Require().NotNil(stored.Goals)
	s.Equal("vegan", *stored.Goals)
	s.Equal([]string{}, stored.DietaryRestrictions)

	// Second upsert replaces in place.
	stored.Allergies = []string{}
	stored.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.profileRepo.Upsert(ctx, stored))

	again, err := s.profileRepo.GetByUserID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal([]string{}, again.Allergies)
	s.Equal("vegan", *again.Goals)
}

func (s *RepoIntegrationTestSuite) Test_ScanRepo_SaveListGet() {
	ctx := context.Background()
	u := s.mustCreateUser("scans@example.com")

	name := "Granola"
	sc := &scan.Scan{
		ID:          uuid.New(),
		UserID:      u.ID,
		ProductName: &name,
		AnalysisData: map[string]any{
			"verdict": "ok",
		},
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.scanRepo.Save(ctx, sc))

	stored, err := s.scanRepo.FindByID(ctx, sc.ID, u.ID)
	s.Require().NoError(err)
	s.Equal("Granola", *stored.ProductName)
	s.Equal("ok", stored.AnalysisData["verdict"])

	list, err := s.scanRepo.ListByUser(ctx, u.ID, 10, 0)
	s.Require().NoError(err)
	s.Len(list, 1)

	// Scoped lookups: another user's id reads as not found.
	_, err = s.scanRepo.FindByID(ctx, sc.ID, uuid.New())
	s.Require().ErrorIs(err, scan.ErrScanNotFound)
}

func (s *RepoIntegrationTestSuite) Test_ProfileCascadesWithUser() {
	ctx := context.Background()
	u := s.mustCreateUser("cascade@example.com")

	p, err := s.profileRepo.GetByUserID(ctx, u.ID)
	s.Require().NoError(err)
	p.Allergies = []string{"soy"}
	p.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	_, err = s.dbPool.Exec(ctx, "DELETE FROM users WHERE id = $1", u.ID)
	s.Require().NoError(err)

	var count int
	err = s.dbPool.QueryRow(ctx, "SELECT count(*) FROM user_profiles WHERE user_id = $1", u.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(0, count)
}
