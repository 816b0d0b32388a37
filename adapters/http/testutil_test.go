package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/aislescan/aislescan-api/adapters/event"
	authUC "github.com/aislescan/aislescan-api/internal/application/usecase/auth"
	profileUC "github.com/aislescan/aislescan-api/internal/application/usecase/profile"
	scanUC "github.com/aislescan/aislescan-api/internal/application/usecase/scan"
	"github.com/aislescan/aislescan-api/internal/domain/profile"
	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/internal/domain/user"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/auth"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

// In-memory stores with the same contracts as the Postgres repos, so the
// full router can be exercised without a database.

type memUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uuid.UUID]*user.User{}, byEmail: map[string]*user.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return apperror.NewConflict("user", "email", u.Email)
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = &stored
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

type memProfileRepo struct {
	rows map[uuid.UUID]*profile.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{rows: map[uuid.UUID]*profile.Profile{}}
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.rows[userID]
	if !ok {
		return profile.Default(userID), nil
	}
	copied := *p
	return &copied, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	copied := *p
	r.rows[p.UserID] = &copied
	return nil
}

type memScanRepo struct {
	rows map[uuid.UUID]*scan.Scan
}

func newMemScanRepo() *memScanRepo {
	return &memScanRepo{rows: map[uuid.UUID]*scan.Scan{}}
}

func (r *memScanRepo) Save(_ context.Context, s *scan.Scan) error {
	copied := *s
	r.rows[s.ID] = &copied
	return nil
}

func (r *memScanRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*scan.Scan, error) {
	s, ok := r.rows[id]
	if !ok || s.UserID != userID {
		return nil, scan.ErrScanNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memScanRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*scan.Scan, error) {
	out := make([]*scan.Scan, 0)
	for _, s := range r.rows {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*scan.Scan{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type recordingPublisher struct {
	published []event.ScanEventPayload
}

func (p *recordingPublisher) PublishScanCreated(_ context.Context, payload event.ScanEventPayload) error {
	p.published = append(p.published, payload)
	return nil
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

type fakeStatsReader struct {
	counts map[string]int64
}

func (f *fakeStatsReader) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := f.counts[key]; ok {
		cmd.SetVal(strconv.FormatInt(v, 10))
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

type testServer struct {
	router    *gin.Engine
	userRepo  *memUserRepo
	publisher *recordingPublisher
	pinger    *fakePinger
	stats     *fakeStatsReader
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	userRepo := newMemUserRepo()
	profileRepo := newMemProfileRepo()
	scanRepo := newMemScanRepo()
	publisher := &recordingPublisher{}
	pinger := &fakePinger{}
	stats := &fakeStatsReader{counts: map[string]int64{}}

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	router := NewRouter(RouterDeps{
		Logger:         log,
		AuthHandler:    NewAuthHandler(authUC.NewSignupUseCase(userRepo, jwtSvc, log), authUC.NewLoginUseCase(userRepo, jwtSvc, log)),
		ProfileHandler: NewProfileHandler(profileUC.NewProfileUseCase(profileRepo)),
		ScanHandler: NewScanHandler(
			scanUC.NewSaveScanUseCase(scanRepo, publisher, log),
			scanUC.NewListScansUseCase(scanRepo),
			scanUC.NewGetScanUseCase(scanRepo),
			scanUC.NewScanStatsUseCase(stats),
		),
		HealthHandler:  NewHealthHandler(pinger),
		AuthMiddleware: AuthMiddleware(authUC.NewVerifyTokenUseCase(userRepo, jwtSvc, log)),
		CORSOrigins:    []string{"*"},
	})

	return &testServer{
		router:    router,
		userRepo:  userRepo,
		publisher: publisher,
		pinger:    pinger,
		stats:     stats,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
