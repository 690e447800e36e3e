package archive

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"courtside/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	a, err := NewArchive(dbPath)
	require.NoError(t, err, "NewArchive should open a fresh database")

	// Reduce log noise during tests
	a.logger.SetLevel(logrus.ErrorLevel)

	t.Cleanup(func() { a.Close() })
	return a
}

func testPhoto(id string) models.PhotoRecord {
	return models.PhotoRecord{
		ImagnID:      id,
		ImageURL:     "https://cdn.imagn.com/image/thumb/800-750/" + id + ".jpg",
		ThumbnailURL: "https://cdn.imagn.com/image/thumb/250-225/" + id + ".jpg",
		Headline:     "LeBron James wearing Nike LeBron 21",
		Caption:      "Los Angeles Lakers forward LeBron James (23) warms up",
		Photographer: "Kirby Lee",
		Source:       "Imagn Images",
		PhotoDate:    "2025-01-15",
		PlayerName:   "LeBron James",
	}
}

func TestAddPhotosInsert(t *testing.T) {
	a := newTestArchive(t)

	added, enriched, err := a.AddPhotos([]models.PhotoRecord{testPhoto("22334455")})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, enriched)

	got, err := a.GetPhoto("22334455")
	require.NoError(t, err)
	assert.Equal(t, "lebron-james", got.PlayerSlug, "player slug should be derived on insert")
	assert.Equal(t, "nike", got.BrandSlug, "brand slug should be extracted from headline")
	assert.NotEmpty(t, got.AddedAt, "added_at should be stamped on insert")
}

func TestAddPhotosSkipsDuplicates(t *testing.T) {
	a := newTestArchive(t)

	photo := testPhoto("22334455")
	_, _, err := a.AddPhotos([]models.PhotoRecord{photo})
	require.NoError(t, err)

	added, enriched, err := a.AddPhotos([]models.PhotoRecord{photo})
	require.NoError(t, err)
	assert.Equal(t, 0, added, "re-adding the same photo should not insert")
	assert.Equal(t, 0, enriched, "identical photo should not count as enriched")

	count, err := a.CountPhotos()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddPhotosEnrichesEmptyFields(t *testing.T) {
	a := newTestArchive(t)

	first := testPhoto("22334455")
	first.Photographer = ""
	first.HoverURL = ""
	_, _, err := a.AddPhotos([]models.PhotoRecord{first})
	require.NoError(t, err)

	second := testPhoto("22334455")
	second.Photographer = "Kirby Lee"
	second.HoverURL = "https://cdn.imagn.com/image/thumb/450-425/22334455.jpg"
	second.Headline = "A rewritten headline that must not clobber"

	added, enriched, err := a.AddPhotos([]models.PhotoRecord{second})
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, enriched)

	got, err := a.GetPhoto("22334455")
	require.NoError(t, err)
	assert.Equal(t, "Kirby Lee", got.Photographer, "empty field should be filled")
	assert.Equal(t, second.HoverURL, got.HoverURL)
	assert.Equal(t, first.Headline, got.Headline, "populated field should be preserved")
}

func TestAddPhotosSkipsInvalidRecords(t *testing.T) {
	a := newTestArchive(t)

	added, _, err := a.AddPhotos([]models.PhotoRecord{
		{ImagnID: "", ImageURL: "https://example.com/x.jpg"},
		{ImagnID: "99", ImageURL: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, added, "records without id or image url should be skipped")
}

func TestGetPhotoNotFound(t *testing.T) {
	a := newTestArchive(t)

	_, err := a.GetPhoto("does-not-exist")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPhotoQueries(t *testing.T) {
	a := newTestArchive(t)

	lebron := testPhoto("100")
	tatum := models.PhotoRecord{
		ImagnID:    "200",
		ImageURL:   "https://cdn.imagn.com/image/thumb/800-750/200.jpg",
		Headline:   "Jayson Tatum in the Air Jordan 38",
		PhotoDate:  "2025-01-20",
		PlayerName: "Jayson Tatum",
	}
	older := testPhoto("300")
	older.PhotoDate = "2024-11-02"

	_, _, err := a.AddPhotos([]models.PhotoRecord{lebron, tatum, older})
	require.NoError(t, err)

	t.Run("all photos newest first", func(t *testing.T) {
		photos, err := a.AllPhotos(0)
		require.NoError(t, err)
		require.Len(t, photos, 3)
		assert.Equal(t, "200", photos[0].ImagnID)
		assert.Equal(t, "300", photos[2].ImagnID)
	})

	t.Run("limit applies", func(t *testing.T) {
		photos, err := a.AllPhotos(2)
		require.NoError(t, err)
		assert.Len(t, photos, 2)
	})

	t.Run("by player", func(t *testing.T) {
		photos, err := a.PhotosByPlayer("lebron-james")
		require.NoError(t, err)
		require.Len(t, photos, 2)
		for _, p := range photos {
			assert.Equal(t, "LeBron James", p.PlayerName)
		}
	})

	t.Run("by brand", func(t *testing.T) {
		photos, err := a.PhotosByBrand("jordan")
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, "200", photos[0].ImagnID)
	})

	t.Run("by week", func(t *testing.T) {
		photos, err := a.PhotosByWeek("2025-W03")
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, "100", photos[0].ImagnID)
	})

	t.Run("recent cutoff", func(t *testing.T) {
		photos, err := a.RecentPhotos("2025-01-01")
		require.NoError(t, err)
		assert.Len(t, photos, 2)
	})

	t.Run("search by caption text", func(t *testing.T) {
		photos, err := a.SearchPhotos("warms up")
		require.NoError(t, err)
		assert.Len(t, photos, 2)
	})
}

func TestAggregations(t *testing.T) {
	a := newTestArchive(t)

	photos := []models.PhotoRecord{
		testPhoto("1"),
		testPhoto("2"),
		{
			ImagnID:    "3",
			ImageURL:   "https://cdn.imagn.com/image/thumb/800-750/3.jpg",
			Headline:   "Jayson Tatum in the Air Jordan 38",
			PhotoDate:  "2025-01-20",
			PlayerName: "Jayson Tatum",
		},
		{
			ImagnID:   "4",
			ImageURL:  "https://cdn.imagn.com/image/thumb/800-750/4.jpg",
			Headline:  "Pregame scenes at the arena",
			PhotoDate: "2025-01-20",
		},
	}
	_, _, err := a.AddPhotos(photos)
	require.NoError(t, err)

	t.Run("players ordered by count", func(t *testing.T) {
		players, err := a.AllPlayers()
		require.NoError(t, err)
		require.Len(t, players, 2, "photo without a player should not create an entry")
		assert.Equal(t, "lebron-james", players[0].Slug)
		assert.Equal(t, 2, players[0].Count)
		assert.True(t, players[0].HasPage)
		assert.Equal(t, "2025-01-15", players[0].LatestDate)
	})

	t.Run("brands include other bucket", func(t *testing.T) {
		brands, err := a.AllBrands()
		require.NoError(t, err)
		require.Len(t, brands, 3)
		assert.Equal(t, "nike", brands[0].Slug)
		assert.Equal(t, "Nike", brands[0].Name)
	})

	t.Run("weeks newest first", func(t *testing.T) {
		weeks, err := a.AllWeeks()
		require.NoError(t, err)
		require.Len(t, weeks, 2)
		assert.Equal(t, "2025-W04", weeks[0].Week)
		assert.Equal(t, 2, weeks[0].Count)
	})

	t.Run("stats exclude other from brand total", func(t *testing.T) {
		stats, err := a.Stats()
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalPhotos)
		assert.Equal(t, 2, stats.TotalPlayers)
		assert.Equal(t, 2, stats.TotalBrands)
		assert.Equal(t, 2, stats.TotalWeeks)
		require.NotEmpty(t, stats.TopPlayers)
		assert.Equal(t, "lebron-james", stats.TopPlayers[0].Slug)
	})
}

func TestKeywordsRoundTrip(t *testing.T) {
	a := newTestArchive(t)

	photo := testPhoto("555")
	photo.Keywords = []string{"sneakers", "lakers", "nike lebron 21"}
	_, _, err := a.AddPhotos([]models.PhotoRecord{photo})
	require.NoError(t, err)

	got, err := a.GetPhoto("555")
	require.NoError(t, err)
	assert.Equal(t, photo.Keywords, got.Keywords)
}

func TestIngestJobPersistence(t *testing.T) {
	a := newTestArchive(t)

	created := time.Now().UTC().Truncate(time.Second)
	job := models.IngestJob{
		ID:        "job-1",
		Source:    "feeds/2025-01-15.json",
		Status:    models.IngestRunning,
		CreatedAt: created,
	}
	require.NoError(t, a.RecordIngestJob(job))

	// Completing the job updates the same row
	done := created.Add(2 * time.Second)
	job.Status = models.IngestCompleted
	job.PhotosSeen = 12
	job.PhotosAdded = 9
	job.CompletedAt = &done
	require.NoError(t, a.RecordIngestJob(job))

	jobs, err := a.ListIngestJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.IngestCompleted, jobs[0].Status)
	assert.Equal(t, 12, jobs[0].PhotosSeen)
	assert.Equal(t, 9, jobs[0].PhotosAdded)
	require.NotNil(t, jobs[0].CompletedAt)
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	a, err := NewArchive(dbPath)
	require.NoError(t, err)
	a.logger.SetLevel(logrus.ErrorLevel)
	_, _, err = a.AddPhotos([]models.PhotoRecord{testPhoto("777")})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	reopened, err := NewArchive(dbPath)
	require.NoError(t, err)
	reopened.logger.SetLevel(logrus.ErrorLevel)
	defer reopened.Close()

	count, err := reopened.CountPhotos()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "tables and data should survive reopen")
}
