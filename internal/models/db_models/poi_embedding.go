package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"time"
)

type PoiEmbedding struct {
	PoiID     string `gorm:"primaryKey;column:poi_id"`
	Name      string
	Region    string
	Tags      pq.StringArray  `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`

	// Populated by the nearest-neighbour query, never stored.
	Similarity float64 `gorm:"->;-:migration"`
}
