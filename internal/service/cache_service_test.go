package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/repository"
)

func newRecordCache(t *testing.T) (*CacheService, *miniredis.Miniredis, *MetricsService) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	metrics := NewMetricsService()
	return NewCacheService(repository.NewCacheRepository(client, nil), metrics, time.Minute, nil, true), server, metrics
}

func TestDetailServiceReadsThroughCache(t *testing.T) {
	cache, server, metrics := newRecordCache(t)
	fs := &fakeStore[*models.Student]{entity: models.EntityStudents, records: tenStudents()}
	details := NewDetailService[*models.Student](fs, nil).WithCache(cache)

	first, err := details.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.True(t, server.Exists(RecordKey(models.EntityStudents, "2")))

	second, err := details.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "ben", second.Record.Name)
	assert.Equal(t, 4.8, second.NormalizedRating)
	assert.Equal(t, "Male", second.DisplayGender)
	assert.Equal(t, 1, fs.callCount())
	assert.InDelta(t, 0.5, metrics.Snapshot().CacheHitRatio, 0.001)

	server.FastForward(2 * time.Minute)
	third, err := details.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 2, fs.callCount())
}

func TestViewMutationsEvictCachedDetail(t *testing.T) {
	cache, server, _ := newRecordCache(t)
	fs := &fakeStore[*models.Student]{entity: models.EntityStudents, records: tenStudents()}
	details := NewDetailService[*models.Student](fs, nil).WithCache(cache)
	views := newStudentViews(t, fs, inlineLoader{}).WithCache(cache)

	for _, id := range []models.ID{"1", "2"} {
		_, err := details.Get(context.Background(), id)
		require.NoError(t, err)
	}

	page, err := views.Mount(context.Background())
	require.NoError(t, err)

	_, err = views.Update(context.Background(), page.ID, "1", student("", "anabel", 5, 10, models.GenderFemale, 4.1))
	require.NoError(t, err)
	assert.False(t, server.Exists(RecordKey(models.EntityStudents, "1")))
	assert.True(t, server.Exists(RecordKey(models.EntityStudents, "2")))

	_, err = views.Delete(context.Background(), page.ID, "2", true)
	require.NoError(t, err)
	assert.False(t, server.Exists(RecordKey(models.EntityStudents, "2")))
}

func TestCacheServiceDropsUndecodableEntries(t *testing.T) {
	cache, server, _ := newRecordCache(t)
	key := RecordKey(models.EntityTeachers, "t1")
	require.NoError(t, server.Set(key, "{broken"))

	var teacher *models.Teacher
	assert.False(t, cache.Get(context.Background(), key, &teacher))
	assert.False(t, server.Exists(key))
}

func TestDisabledCacheIsInert(t *testing.T) {
	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.False(t, nilCache.Get(context.Background(), "k", new(int)))
	nilCache.Set(context.Background(), "k", 1, 0)
	nilCache.Evict(context.Background(), "k")

	off := NewCacheService(nil, nil, 0, nil, true)
	assert.False(t, off.Enabled())
}

func TestCacheServiceEvictsOnlyTheExactRecord(t *testing.T) {
	cache, server, _ := newRecordCache(t)
	ctx := context.Background()
	for _, id := range []models.ID{"10", "11"} {
		cache.Set(ctx, RecordKey(models.EntityStudents, id), id, 0)
	}

	cache.Evict(ctx, RecordKey(models.EntityStudents, "1*"))
	cache.Evict(ctx, RecordKey(models.EntityStudents, "*"))

	assert.True(t, server.Exists(RecordKey(models.EntityStudents, "10")))
	assert.True(t, server.Exists(RecordKey(models.EntityStudents, "11")))

	cache.Evict(ctx, RecordKey(models.EntityStudents, "10"))
	assert.False(t, server.Exists(RecordKey(models.EntityStudents, "10")))
	assert.True(t, server.Exists(RecordKey(models.EntityStudents, "11")))
}
