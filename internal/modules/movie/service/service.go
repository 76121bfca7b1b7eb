package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/reelog/reelog-backend/internal/entity"
	movieClient "github.com/reelog/reelog-backend/internal/modules/movie/client"
	movieDto "github.com/reelog/reelog-backend/internal/modules/movie/dto"
	movieRepo "github.com/reelog/reelog-backend/internal/modules/movie/repository"
	"github.com/reelog/reelog-backend/internal/ratelimit"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"gorm.io/gorm"
)

type MovieService interface {
	GetMovie(ctx context.Context, movieID int64) (*movieDto.MovieDetail, error)

	// Search throttles one call per client within the rate-limit window
	// and serves identical queries from the response cache within the
	// cache TTL, so the shared downstream API is never hammered.
	Search(ctx context.Context, clientIP, query string, page int) (json.RawMessage, error)

	// EnsureSnapshot captures (movieId, title, posterPath) the first
	// time a like or review references the movie.
	EnsureSnapshot(ctx context.Context, movieID int64) (*entity.MovieSnapshot, error)
}

type movieService struct {
	client      movieClient.MetadataClient
	repo        movieRepo.MovieRepository
	redisClient *redis.Client

	searchRateLimit time.Duration
	searchCacheTTL  time.Duration
}

func NewMovieService(client movieClient.MetadataClient, repo movieRepo.MovieRepository, redisClient *redis.Client, searchRateLimit, searchCacheTTL time.Duration) MovieService {
	return &movieService{
		client:          client,
		repo:            repo,
		redisClient:     redisClient,
		searchRateLimit: searchRateLimit,
		searchCacheTTL:  searchCacheTTL,
	}
}

func (s *movieService) GetMovie(ctx context.Context, movieID int64) (*movieDto.MovieDetail, error) {
	detail, err := s.client.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveSnapshot(ctx, &entity.MovieSnapshot{
		MovieID:    detail.ID,
		Title:      detail.Title,
		PosterPath: detail.PosterPath,
	}); err != nil {
		// the snapshot is a side effect of reading; reads still succeed
		log.Printf("failed to save movie snapshot %d: %v", movieID, err)
	}

	return detail, nil
}

func (s *movieService) Search(ctx context.Context, clientIP, query string, page int) (json.RawMessage, error) {
	allowed, err := ratelimit.CheckAndMark(ctx, s.redisClient, "movie_search:"+clientIP, s.searchRateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	cacheKey := fmt.Sprintf("movie_search:query=%s&page=%d", query, page)
	cached, ok, err := ratelimit.GetCachedBody(ctx, s.redisClient, cacheKey)
	if err != nil {
		log.Printf("failed to read cached movie search response: %v", err)
	}
	if ok {
		return json.RawMessage(cached), nil
	}

	body, err := s.client.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}

	if err := ratelimit.SetCachedBody(ctx, s.redisClient, cacheKey, string(body), s.searchCacheTTL); err != nil {
		log.Printf("failed to cache movie search response: %v", err)
	}

	return json.RawMessage(body), nil
}

func (s *movieService) EnsureSnapshot(ctx context.Context, movieID int64) (*entity.MovieSnapshot, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, movieID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	detail, err := s.client.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	snapshot = &entity.MovieSnapshot{
		MovieID:    detail.ID,
		Title:      detail.Title,
		PosterPath: detail.PosterPath,
	}
	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}
