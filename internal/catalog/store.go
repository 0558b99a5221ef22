package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"movierec/pkg/apperr"
	"movierec/pkg/models"
)

// Store holds the immutable movie table and the precomputed similarity
// matrix, indexed consistently by catalog row position. Built once at
// startup and read concurrently without locking afterwards.
type Store struct {
	movies  []models.Movie
	matrix  [][]float64
	byTitle map[string]int // title -> row index
	byID    map[int]int    // movie id -> row index
}

// New validates the movie table against the matrix and builds the lookup
// indexes. The matrix must be square with one row per movie; duplicate
// titles or ids are rejected so that title-based lookup stays unambiguous.
func New(movies []models.Movie, matrix [][]float64) (*Store, error) {
	if len(matrix) != len(movies) {
		return nil, fmt.Errorf("%w: matrix has %d rows for %d movies",
			apperr.ErrDataIntegrity, len(matrix), len(movies))
	}
	for i, row := range matrix {
		if len(row) != len(movies) {
			return nil, fmt.Errorf("%w: matrix row %d has %d columns, want %d",
				apperr.ErrDataIntegrity, i, len(row), len(movies))
		}
	}

	byTitle := make(map[string]int, len(movies))
	byID := make(map[int]int, len(movies))
	for i, m := range movies {
		if _, dup := byTitle[m.Title]; dup {
			return nil, fmt.Errorf("%w: duplicate title %q", apperr.ErrDataIntegrity, m.Title)
		}
		if _, dup := byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate movie id %d", apperr.ErrDataIntegrity, m.ID)
		}
		byTitle[m.Title] = i
		byID[m.ID] = i
	}

	return &Store{
		movies:  movies,
		matrix:  matrix,
		byTitle: byTitle,
		byID:    byID,
	}, nil
}

// Load reads the serialized movie table and similarity matrix produced by
// the offline pipeline. Any failure here is fatal to startup.
func Load(moviesPath, similarityPath string) (*Store, error) {
	var movies []models.Movie
	if err := readJSON(moviesPath, &movies); err != nil {
		return nil, fmt.Errorf("load movie table: %w", err)
	}

	var matrix [][]float64
	if err := readJSON(similarityPath, &matrix); err != nil {
		return nil, fmt.Errorf("load similarity matrix: %w", err)
	}

	return New(movies, matrix)
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (s *Store) Len() int {
	return len(s.movies)
}

// Movies returns the catalog in load order. Callers must not mutate it.
func (s *Store) Movies() []models.Movie {
	return s.movies
}

// ByTitle resolves an exact, case-sensitive title to its movie and row index.
func (s *Store) ByTitle(title string) (models.Movie, int, bool) {
	i, ok := s.byTitle[title]
	if !ok {
		return models.Movie{}, 0, false
	}
	return s.movies[i], i, true
}

func (s *Store) ByID(id int) (models.Movie, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Movie{}, false
	}
	return s.movies[i], true
}

// Row returns the similarity scores for the given catalog row. An index
// outside the matrix means the catalog and matrix no longer agree, which
// is a data-integrity failure rather than a lookup miss.
func (s *Store) Row(i int) ([]float64, error) {
	if i < 0 || i >= len(s.matrix) {
		return nil, fmt.Errorf("%w: row %d out of range for %d-row matrix",
			apperr.ErrDataIntegrity, i, len(s.matrix))
	}
	return s.matrix[i], nil
}
