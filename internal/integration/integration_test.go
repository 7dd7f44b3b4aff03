package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"survey-service/internal/app"
	"survey-service/internal/domain"
	pgstore "survey-service/internal/infra/postgres"
	pgmigrations "survey-service/internal/infra/postgres/migrations"
	infraredis "survey-service/internal/infra/redis"
)

func TestEnrollAnswerAndVoteEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgstore.NewSurveyLoader(pool)
	survey := sampleSurvey()
	if err := loader.SaveSurvey(ctx, survey); err != nil {
		t.Fatalf("seed survey: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	surveyRepo := infraredis.NewSurveyRepository(redisClient, loader, 5*time.Minute)
	feeds := infraredis.NewFeedStore(redisClient)
	service := app.NewSurveyService(surveyRepo, pgstore.NewResponseStore(pool), feeds)

	captcha := app.NewCaptchaServiceWithRand(infraredis.NewChallengeStore(redisClient), app.CaptchaOptions{
		MaxAttempts: 3,
		TTL:         time.Minute,
	}, func(int) int { return 6 })
	challenge, err := captcha.Issue(ctx)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := captcha.Verify(ctx, challenge.ID, "11"); !errors.Is(err, domain.ErrMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := captcha.Verify(ctx, challenge.ID, "12"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	summaries, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != survey.ID {
		t.Fatalf("expected seeded survey listed, got %+v", summaries)
	}

	alice, err := service.Enroll(ctx, survey.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	bob, err := service.Enroll(ctx, survey.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	updates, cancel, err := service.Subscribe(ctx, survey.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()
	<-updates

	qid := survey.Questions[0].ID
	if _, err := service.Answer(ctx, survey.ID, alice, qid, "More buses at night"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := service.Answer(ctx, survey.ID, bob, qid, "Cheaper tickets"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := service.Answer(ctx, survey.ID, bob, qid, "Again"); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}
	if _, err := service.Vote(ctx, survey.ID, alice, qid, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	results, err := service.Vote(ctx, survey.ID, bob, qid, 1)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}

	if results.Participants != 2 {
		t.Fatalf("expected 2 participants, got %d", results.Participants)
	}
	got := results.Questions[0]
	if got.Votes != 2 || len(got.Answers) != 2 || got.Answers[0] != "More buses at night" {
		t.Fatalf("unexpected tally %+v", got)
	}

	select {
	case update := <-updates:
		if update.SurveyID != survey.ID {
			t.Fatalf("unexpected update %+v", update)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a published update")
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "survey", "POSTGRES_PASSWORD": "surveypass", "POSTGRES_DB": "surveydb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://survey:surveypass@%s:%s/surveydb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func sampleSurvey() domain.Survey {
	survey := domain.Survey{
		Title: "City transit",
		Questions: []domain.Question{
			{Text: "What would make you take the bus more often?"},
			{Text: "Should the tram line be extended?"},
		},
	}
	survey.AssignIDs()
	return survey
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
