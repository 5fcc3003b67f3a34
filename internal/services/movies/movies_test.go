package movies

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"moviekeeper/proj/internal/clients/tmdb"
	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"
	storagemodels "moviekeeper/proj/internal/storage/postgres/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMoviesStorage struct {
	movies map[int64]*models.Movie
	nextID int64
}

func newFakeMoviesStorage() *fakeMoviesStorage {
	return &fakeMoviesStorage{movies: make(map[int64]*models.Movie), nextID: 1}
}

func (f *fakeMoviesStorage) Get(_ context.Context, id int64) (*models.Movie, error) {
	movie, ok := f.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return movie, nil
}

func (f *fakeMoviesStorage) GetByTmdbID(_ context.Context, tmdbID, ownerID int64) (*models.Movie, error) {
	for _, movie := range f.movies {
		if movie.TmdbID != nil && *movie.TmdbID == tmdbID && movie.OwnerID == ownerID {
			return movie, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeMoviesStorage) Insert(_ context.Context, params storagemodels.MovieInsertParams) (*models.Movie, error) {
	movie := &models.Movie{
		ID:          f.nextID,
		TmdbID:      params.TmdbID,
		Title:       params.Title,
		Genre:       params.Genre,
		Description: params.Description,
		Rating:      params.Rating,
		OwnerID:     params.OwnerID,
	}
	f.nextID++
	f.movies[movie.ID] = movie
	return movie, nil
}

func (f *fakeMoviesStorage) ListByOwner(_ context.Context, ownerID int64) ([]models.Movie, error) {
	var owned []models.Movie
	for id := int64(1); id < f.nextID; id++ {
		if movie, ok := f.movies[id]; ok && movie.OwnerID == ownerID {
			owned = append(owned, *movie)
		}
	}
	return owned, nil
}

func (f *fakeMoviesStorage) Delete(_ context.Context, id, ownerID int64) error {
	movie, ok := f.movies[id]
	if !ok || movie.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(f.movies, id)
	return nil
}

func (f *fakeMoviesStorage) UpdateRating(_ context.Context, id, ownerID int64, rating float64) (*models.Movie, error) {
	movie, ok := f.movies[id]
	if !ok || movie.OwnerID != ownerID {
		return nil, storage.ErrNotFound
	}
	movie.Rating = rating
	return movie, nil
}

type fakeMetadata struct {
	info *tmdb.MovieInfo
	err  error
	hits int
}

func (f *fakeMetadata) GetMovie(_ context.Context, _ int64) (*tmdb.MovieInfo, error) {
	f.hits++
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func strptr(s string) *string { return &s }

func newTestService(store MoviesStorage, metadata tmdb.Provider) *MovieService {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), store, metadata)
}

func TestAddEnrichesMissingFields(t *testing.T) {
	store := newFakeMoviesStorage()
	metadata := &fakeMetadata{info: &tmdb.MovieInfo{
		Title:       "Dune",
		Genre:       strptr("Science Fiction"),
		Description: strptr("A mythic journey."),
	}}
	svc := newTestService(store, metadata)

	movie, err := svc.Add(context.Background(), 1, AddInput{TmdbID: 438631})
	require.NoError(t, err)
	assert.Equal(t, "Dune", movie.Title)
	require.NotNil(t, movie.Genre)
	assert.Equal(t, "Science Fiction", *movie.Genre)
	require.NotNil(t, movie.Description)
	assert.Equal(t, 1, metadata.hits)
}

func TestAddSkipsEnrichmentWhenTitleGiven(t *testing.T) {
	store := newFakeMoviesStorage()
	metadata := &fakeMetadata{err: tmdb.ErrUnavailable}
	svc := newTestService(store, metadata)

	movie, err := svc.Add(context.Background(), 1, AddInput{TmdbID: 438631, Title: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, "Dune", movie.Title)
	assert.Equal(t, 0, metadata.hits)
}

func TestAddIsIdempotentPerOwner(t *testing.T) {
	store := newFakeMoviesStorage()
	metadata := &fakeMetadata{info: &tmdb.MovieInfo{Title: "Dune"}}
	svc := newTestService(store, metadata)

	first, err := svc.Add(context.Background(), 1, AddInput{TmdbID: 438631})
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), 1, AddInput{TmdbID: 438631})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.movies, 1)

	// A different owner adding the same external title gets their own row.
	other, err := svc.Add(context.Background(), 2, AddInput{TmdbID: 438631})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Len(t, store.movies, 2)
}

func TestAddUpstreamUnavailable(t *testing.T) {
	store := newFakeMoviesStorage()
	metadata := &fakeMetadata{err: tmdb.ErrUnavailable}
	svc := newTestService(store, metadata)

	_, err := svc.Add(context.Background(), 1, AddInput{TmdbID: 438631})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Empty(t, store.movies, "nothing must be persisted on enrichment failure")
}

func TestAddCustomRatingBounds(t *testing.T) {
	store := newFakeMoviesStorage()
	svc := newTestService(store, &fakeMetadata{})

	for _, rating := range []float64{5.5, -1} {
		_, err := svc.AddCustom(context.Background(), 1, AddCustomInput{Title: "Dune", Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
	assert.Empty(t, store.movies)

	movie, err := svc.AddCustom(context.Background(), 1, AddCustomInput{Title: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, movie.Rating)
}

func TestDeleteOwnershipScoped(t *testing.T) {
	store := newFakeMoviesStorage()
	svc := newTestService(store, &fakeMetadata{})
	movie, err := svc.AddCustom(context.Background(), 1, AddCustomInput{Title: "Dune"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 2, movie.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.Len(t, store.movies, 1, "foreign delete must not remove the row")

	require.NoError(t, svc.Delete(context.Background(), 1, movie.ID))
	assert.Empty(t, store.movies)
}

func TestSetRating(t *testing.T) {
	store := newFakeMoviesStorage()
	svc := newTestService(store, &fakeMetadata{})
	movie, err := svc.AddCustom(context.Background(), 1, AddCustomInput{Title: "Dune"})
	require.NoError(t, err)

	t.Run("bounds", func(t *testing.T) {
		for _, rating := range []float64{5.5, -1} {
			_, err := svc.SetRating(context.Background(), 1, movie.ID, rating)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
		assert.Equal(t, 0.0, store.movies[movie.ID].Rating, "stored rating unchanged after rejection")
	})
	t.Run("not owned", func(t *testing.T) {
		_, err := svc.SetRating(context.Background(), 2, movie.ID, 4)
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
	t.Run("override", func(t *testing.T) {
		updated, err := svc.SetRating(context.Background(), 1, movie.ID, 4.5)
		require.NoError(t, err)
		assert.Equal(t, 4.5, updated.Rating)
	})
}

func TestListOwned(t *testing.T) {
	store := newFakeMoviesStorage()
	svc := newTestService(store, &fakeMetadata{})
	_, err := svc.AddCustom(context.Background(), 1, AddCustomInput{Title: "Dune"})
	require.NoError(t, err)
	_, err = svc.AddCustom(context.Background(), 2, AddCustomInput{Title: "Alien"})
	require.NoError(t, err)

	owned, err := svc.ListOwned(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Dune", owned[0].Title)
}
