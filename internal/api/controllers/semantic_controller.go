package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type SemanticController struct {
	semanticService services.SemanticServiceInterface
}

func NewSemanticController(semanticService services.SemanticServiceInterface) *SemanticController {
	return &SemanticController{
		semanticService: semanticService,
	}
}

// Rerank godoc
// @Summary Semantic POI search
// @Description Match a free-text query against POI embeddings
// @Tags Semantic
// @Accept json
// @Produce json
// @Param request body request_models.SemanticRerankRequest true "Query payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /v1/semantic/rerank [post]
func (s *SemanticController) Rerank(c *gin.Context) {
	var req request_models.SemanticRerankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	matches, err := s.semanticService.Rerank(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, matches, "Semantic matches retrieved successfully")
}

// IndexPoi godoc
// @Summary Index a POI for semantic search
// @Description Embed the given description text and store it for similarity queries (admin only)
// @Tags Semantic
// @Accept json
// @Produce json
// @Param request body request_models.IndexPoiRequest true "Index payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /v1/semantic/index [post]
func (s *SemanticController) IndexPoi(c *gin.Context) {
	var req request_models.IndexPoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := s.semanticService.IndexPoi(c.Request.Context(), req.PoiID, req.Name, req.Region, req.Tags, req.Text); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI indexed successfully")
}
