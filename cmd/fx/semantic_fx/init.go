package semantic_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideEmbeddingRepo, provideEmbeddingClient, provideSemanticService)

func provideEmbeddingRepo(db *gorm.DB) repositories.IPoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

func provideEmbeddingClient(cfg *utils.Config) utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
}

func provideSemanticService(
	embeddings repositories.IPoiEmbeddingRepository,
	client utils.EmbeddingClientInterface,
) services.SemanticServiceInterface {
	return services.NewSemanticService(embeddings, client)
}
