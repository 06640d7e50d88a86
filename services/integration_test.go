package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"rentalsite/config"
	"rentalsite/errors"
	"rentalsite/models"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Các test này cần Docker, chạy với ROOMS_INTEGRATION=1
func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("ROOMS_INTEGRATION") != "1" {
		t.Skip("set ROOMS_INTEGRATION=1 to run container tests")
	}
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

func setupPostgres(t *testing.T) *gorm.DB {
	requireIntegration(t)
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "rentalsite",
			"POSTGRES_PASSWORD": "rentalsite",
			"POSTGRES_DB":       "rentalsite",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432/tcp")

	dsn := fmt.Sprintf("host=%s port=%s user=rentalsite password=rentalsite dbname=rentalsite sslmode=disable TimeZone=UTC", host, port)
	db, err := config.ConnectDB(dsn)
	require.NoError(t, err)
	return db
}

func TestGormRoomRepository(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewGormRoomRepository(db)

	room := &models.Room{
		ID:       42,
		Name:     "Casa Azul",
		Price:    50,
		Features: []string{"Wifi", "Pool"},
		Pricing: &models.RoomPricing{
			NationalTourism: &models.TourismTier{Enabled: true, NightlyRate: &models.Rate{Enabled: true, Price: 40}},
		},
		Hosts:       []models.Host{{ID: "h1", Name: "Ana", IsPrimary: true}},
		BookedDates: []models.DateBlock{{Start: "2025-06-01", End: "2025-06-03"}},
		Available:   true,
	}
	require.NoError(t, repo.Create(ctx, room))
	assert.Equal(t, 1, room.ID, "first room gets id 1")

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Casa Azul", got.Name)
	assert.Equal(t, 40.0, ResolvePrice(got, ""))
	assert.Equal(t, []string{"Wifi", "Pool"}, []string(got.Features))
	require.Len(t, got.BookedDates, 1)

	room.Name = "Casa Azul II"
	require.NoError(t, repo.Save(ctx, room))
	got, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Casa Azul II", got.Name)

	require.NoError(t, repo.ReplaceAll(ctx, []models.Room{{ID: 4, Name: "Four"}, {ID: 2, Name: "Two"}}))
	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 2, rooms[0].ID)

	next := &models.Room{Name: "Five"}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, 5, next.ID)

	updated, err := repo.Update(ctx, 5, func(r *models.Room) error {
		r.Price = 25
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Price)
	_, err = repo.Update(ctx, 77, func(*models.Room) error { return nil })
	assert.True(t, errors.Is(err, errors.ErrRoomNotFound))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, &models.Room{Name: "concurrent"}))
		}()
	}
	wg.Wait()
	rooms, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 13)
	require.NoError(t, repo.Delete(ctx, 15))

	require.NoError(t, repo.Delete(ctx, 4))
	assert.True(t, errors.Is(repo.Delete(ctx, 4), errors.ErrRoomNotFound))
	_, err = repo.Get(ctx, 4)
	assert.True(t, errors.Is(err, errors.ErrRoomNotFound))
}

func TestGormSettingsRepository(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	svc := NewSettingsService(NewGormSettingsRepository(db))

	rates, err := svc.Currencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", rates[0].Code)

	require.NoError(t, svc.SaveCurrencies(ctx, []models.CurrencyRate{{Code: "EUR", Symbol: "€", Rate: 0.9}}))
	require.NoError(t, svc.SaveCurrencies(ctx, []models.CurrencyRate{{Code: "EUR", Symbol: "€", Rate: 0.95}}))

	eur, ok, err := svc.Currency(ctx, "eur")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.95, eur.Rate)
}

func TestCachedRoomRepository_Redis(t *testing.T) {
	requireIntegration(t)
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}, "6379/tcp")

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: host + ":" + port})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := newFileRepo(t)
	repo := NewCachedRoomRepository(inner, rdb, time.Minute, nil)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One"}))

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	var cached []models.Room
	found, err := GetFromRedis(ctx, rdb, "rooms:all", &cached)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "One", cached[0].Name)

	require.NoError(t, repo.Save(ctx, &models.Room{ID: 2, Name: "Two"}))
	found, err = GetFromRedis(ctx, rdb, "rooms:all", &cached)
	require.NoError(t, err)
	assert.False(t, found, "mutation invalidates the list")

	rooms, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}
