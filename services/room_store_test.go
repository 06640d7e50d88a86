package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"rentalsite/errors"
	"rentalsite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) *FileRoomRepository {
	t.Helper()
	repo, err := NewFileRoomRepository(t.TempDir(), nil)
	require.NoError(t, err)
	return repo
}

func TestFileRoomRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)

	first := &models.Room{ID: 42, Name: "First"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, first.ID, "first room gets id 1")
	require.NoError(t, repo.Delete(ctx, 1))

	require.NoError(t, repo.Save(ctx, &models.Room{ID: 5, Name: "Five"}))
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 2, Name: "Two"}))

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 2, rooms[0].ID, "sorted by id")

	next := &models.Room{Name: "Six"}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, 6, next.ID)

	require.NoError(t, repo.Save(ctx, &models.Room{ID: 2, Name: "Two (renamed)"}))
	room, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Two (renamed)", room.Name)

	require.NoError(t, repo.Delete(ctx, 2))
	_, err = repo.Get(ctx, 2)
	assert.True(t, errors.Is(err, errors.ErrRoomNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, 2), errors.ErrRoomNotFound))
}

func TestFileRoomRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One", Features: []string{"Wifi"}}))

	room, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	room.Name = "changed"
	room.Features[0] = "changed"

	again, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "One", again.Name)
	assert.Equal(t, "Wifi", again.Features[0])
}

func TestFileRoomRepository_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := NewFileRoomRepository(dir, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One"}))

	reopened, err := NewFileRoomRepository(dir, nil)
	require.NoError(t, err)
	rooms, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "One", rooms[0].Name)
	assert.Equal(t, 4, rooms[0].Capacity.MaxGuests, "defaults applied on load")
}

func TestFileRoomRepository_ReloadDetectsExternalWrite(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One"}))

	changed, err := repo.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed, "own write is not a change")

	external := `[{"id":1,"name":"One"},{"id":9,"name":"Nine","price":30}]`
	require.NoError(t, os.WriteFile(repo.Path(), []byte(external), 0o644))

	changed, err = repo.Reload(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	room, err := repo.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 30.0, room.Price)

	changed, err = repo.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFileRoomRepository_CorruptFileKeepsData(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One"}))

	require.NoError(t, os.WriteFile(repo.Path(), []byte(`[{"id":`), 0o644))

	_, err := repo.Reload(ctx)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestFileRoomRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One"}))

	require.NoError(t, repo.ReplaceAll(ctx, []models.Room{{ID: 8, Name: "Eight"}, {ID: 3, Name: "Three"}}))

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 3, rooms[0].ID)
	assert.Equal(t, 8, rooms[1].ID)

	// không để lại file tạm
	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileRoomRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(ctx, &models.Room{ID: 1, Name: "One", Price: 10}))

	updated, err := repo.Update(ctx, 1, func(room *models.Room) error {
		room.Price = 20
		room.ID = 99
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ID, "id cannot be changed")
	assert.Equal(t, 20.0, updated.Price)

	failed := errors.NewAppError(errors.ErrCodeValidation, "nope", nil)
	_, err = repo.Update(ctx, 1, func(room *models.Room) error {
		room.Price = 999
		return failed
	})
	assert.Equal(t, failed, err)
	room, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, room.Price, "failed update leaves the room untouched")

	_, err = repo.Update(ctx, 7, func(*models.Room) error { return nil })
	assert.True(t, errors.Is(err, errors.ErrRoomNotFound))
}

func TestFileRoomRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, &models.Room{Name: "r"}))
		}()
	}
	wg.Wait()

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, n)
	assert.Equal(t, n, rooms[n-1].ID)
}

// Reload chạy song song với Save không được cài lại dữ liệu cũ
func TestFileRoomRepository_ReloadDuringSavesKeepsWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewFileRoomRepository(dir, nil)
	require.NoError(t, err)

	const n = 50
	done := make(chan struct{})
	var reloads sync.WaitGroup
	reloads.Add(1)
	go func() {
		defer reloads.Done()
		for {
			select {
			case <-done:
				return
			default:
				_, _ = repo.Reload(ctx)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, repo.Save(ctx, &models.Room{ID: id, Name: "r"}))
		}(i)
	}
	wg.Wait()
	close(done)
	reloads.Wait()

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, n)

	reopened, err := NewFileRoomRepository(dir, nil)
	require.NoError(t, err)
	rooms, err = reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, n)
}
