package repositories

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type IPoiEmbeddingRepository interface {
	GetNearestByVector(vector pgvector.Vector, limit int) ([]db_models.PoiEmbedding, error)
	CreatePoiEmbedding(embedding db_models.PoiEmbedding) error
}

type PoiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) IPoiEmbeddingRepository {
	return &PoiEmbeddingRepository{db: db}
}

func (p *PoiEmbeddingRepository) GetNearestByVector(vector pgvector.Vector, limit int) ([]db_models.PoiEmbedding, error) {
	var results []db_models.PoiEmbedding

	if limit <= 0 {
		limit = 15
	}

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM poi_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := p.db.Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *PoiEmbeddingRepository) CreatePoiEmbedding(embedding db_models.PoiEmbedding) error {
	return p.db.Create(&embedding).Error
}
