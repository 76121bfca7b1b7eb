package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/reelog/reelog-backend/internal/entity"
)

const reviewIndex = "reviews"

// ReviewSearchService mirrors review writes into a Meilisearch index and
// serves full-text queries over it. Indexing is best-effort: a search
// outage never blocks a review mutation, callers log and move on.
type ReviewSearchService interface {
	IndexReview(review *entity.Review) error
	DeleteReview(id string) error
	Search(query string, page, quantity int) (*SearchResult, error)
}

type ReviewDoc struct {
	ID        string `json:"id"`
	MovieID   int64  `json:"movie_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	Author    string `json:"author"`
	CreatedAt int64  `json:"created_at"`
}

type SearchResult struct {
	Hits        []ReviewDoc `json:"hits"`
	Query       string      `json:"query"`
	CurrentPage int         `json:"currentPage"`
	TotalPage   int         `json:"totalPage"`
}

type reviewSearchService struct {
	client meilisearch.ServiceManager
}

func NewReviewSearchService(client meilisearch.ServiceManager) ReviewSearchService {
	s := &reviewSearchService{client: client}
	s.initIndex()
	return s
}

func (s *reviewSearchService) initIndex() {
	filterable := []string{"movie_id", "author"}
	filterableAny := make([]any, len(filterable))
	for i, v := range filterable {
		filterableAny[i] = v
	}
	if _, err := s.client.Index(reviewIndex).UpdateFilterableAttributes(&filterableAny); err != nil {
		log.Printf("Failed to update reviews filterable attributes: %v", err)
	}

	sortable := []string{"created_at", "rating"}
	if _, err := s.client.Index(reviewIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update reviews sortable attributes: %v", err)
	}
}

func (s *reviewSearchService) IndexReview(review *entity.Review) error {
	author := review.AuthorID
	if review.Author != nil {
		author = review.Author.Username
	}

	doc := ReviewDoc{
		ID:        review.ID.String(),
		MovieID:   review.MovieID,
		Title:     review.Title,
		Content:   review.Content,
		Rating:    review.Rating,
		Author:    author,
		CreatedAt: review.CreatedAt.Unix(),
	}

	primaryKey := "id"
	_, err := s.client.Index(reviewIndex).AddDocuments([]ReviewDoc{doc}, &primaryKey)
	return err
}

func (s *reviewSearchService) DeleteReview(id string) error {
	_, err := s.client.Index(reviewIndex).DeleteDocument(id)
	return err
}

func (s *reviewSearchService) Search(query string, page, quantity int) (*SearchResult, error) {
	resp, err := s.client.Index(reviewIndex).Search(query, &meilisearch.SearchRequest{
		Page:        int64(page),
		HitsPerPage: int64(quantity),
		Sort:        []string{"created_at:desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("search reviews: %w", err)
	}

	// round-trip through JSON so the result shape does not depend on the
	// driver's raw hit representation
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var docs []ReviewDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	return &SearchResult{
		Hits:        docs,
		Query:       query,
		CurrentPage: page,
		TotalPage:   int(resp.TotalPages),
	}, nil
}
