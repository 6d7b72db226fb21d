package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupCache(t *testing.T) (*PublicacionCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewPublicacionCache(client, time.Minute), mr
}

func samplePage() ([]models.Publicacion, int64) {
	return []models.Publicacion{
		{ID: uuid.New(), TrabajoID: uuid.New(), AutorID: uuid.New(), Estado: models.EstadoPublicado},
		{ID: uuid.New(), TrabajoID: uuid.New(), AutorID: uuid.New(), Estado: models.EstadoPublicado},
	}, 17
}

func TestGetRecentMissOnEmpty(t *testing.T) {
	c, mr := setupCache(t)
	defer mr.Close()

	_, _, ok := c.GetRecent()
	assert.False(t, ok)
}

func TestSetAndGetRecent(t *testing.T) {
	c, mr := setupCache(t)
	defer mr.Close()

	publicaciones, total := samplePage()
	c.SetRecent(publicaciones, total)

	cached, cachedTotal, ok := c.GetRecent()
	assert.True(t, ok)
	assert.Equal(t, total, cachedTotal)
	assert.Len(t, cached, 2)
	assert.Equal(t, publicaciones[0].ID, cached[0].ID)
}

func TestInvalidate(t *testing.T) {
	c, mr := setupCache(t)
	defer mr.Close()

	publicaciones, total := samplePage()
	c.SetRecent(publicaciones, total)
	c.Invalidate()

	_, _, ok := c.GetRecent()
	assert.False(t, ok)
}

func TestEntryExpires(t *testing.T) {
	c, mr := setupCache(t)
	defer mr.Close()

	publicaciones, total := samplePage()
	c.SetRecent(publicaciones, total)

	mr.FastForward(2 * time.Minute)

	_, _, ok := c.GetRecent()
	assert.False(t, ok)
}

func TestGetRecentSurvivesRedisDown(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	_, _, ok := c.GetRecent()
	assert.False(t, ok)

	// Writes are swallowed too
	publicaciones, total := samplePage()
	c.SetRecent(publicaciones, total)
	c.Invalidate()
}
