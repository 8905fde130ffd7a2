package services

import (
	"context"
	"log"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

const defaultSemanticLimit = 15

type SemanticServiceInterface interface {
	Rerank(ctx context.Context, req request_models.SemanticRerankRequest) ([]response_models.SemanticMatch, error)
	IndexPoi(ctx context.Context, poiID, name, region string, tags []string, text string) error
}

// SemanticService matches free-text queries against POI embeddings. It sits
// beside the deterministic pipeline, never inside it: a rerank result is a
// discovery aid, not a scheduling input.
type SemanticService struct {
	embeddings repositories.IPoiEmbeddingRepository
	client     utils.EmbeddingClientInterface
}

func NewSemanticService(
	embeddings repositories.IPoiEmbeddingRepository,
	client utils.EmbeddingClientInterface,
) SemanticServiceInterface {
	return &SemanticService{embeddings: embeddings, client: client}
}

func (s *SemanticService) Rerank(ctx context.Context, req request_models.SemanticRerankRequest) ([]response_models.SemanticMatch, error) {
	if req.Query == "" {
		return nil, utils.ErrInvalidInput
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSemanticLimit
	}

	vector, err := s.client.GetEmbedding(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	rows, err := s.embeddings.GetNearestByVector(vector, limit)
	if err != nil {
		log.Printf("Error querying embeddings: %v", err)
		return nil, utils.ErrDatabaseError
	}

	matches := make([]response_models.SemanticMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, response_models.SemanticMatch{
			PoiID:      row.PoiID,
			Name:       row.Name,
			Similarity: row.Similarity,
		})
	}
	return matches, nil
}

func (s *SemanticService) IndexPoi(ctx context.Context, poiID, name, region string, tags []string, text string) error {
	if poiID == "" || text == "" {
		return utils.ErrInvalidInput
	}

	vector, err := s.client.GetEmbedding(ctx, text)
	if err != nil {
		return err
	}

	if err := s.embeddings.CreatePoiEmbedding(db_models.PoiEmbedding{
		PoiID:     poiID,
		Name:      name,
		Region:    region,
		Tags:      tags,
		Embedding: vector,
	}); err != nil {
		log.Printf("Error storing embedding: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}
