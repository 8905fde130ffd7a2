package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListPois godoc
// @Summary List catalog POIs
// @Description Page through the POI catalog
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /v1/catalog/pois [get]
func (ct *CatalogController) ListPois(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	pois, err := ct.catalogService.ListPois(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs retrieved successfully")
}

// CreatePoi godoc
// @Summary Create a catalog POI
// @Description Add a POI to the catalog (admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body request_models.CreatePoiRequest true "POI payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /v1/catalog/pois [post]
func (ct *CatalogController) CreatePoi(c *gin.Context) {
	var req request_models.CreatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ct.catalogService.CreatePoi(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI created successfully")
}

// UpdatePoi godoc
// @Summary Update a catalog POI
// @Description Replace a POI's catalog record (admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Param poiId path string true "POI id"
// @Param request body request_models.UpdatePoiRequest true "POI payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /v1/catalog/pois/{poiId} [put]
func (ct *CatalogController) UpdatePoi(c *gin.Context) {
	var req request_models.UpdatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	req.PoiID = c.Param("poiId")

	if err := ct.catalogService.UpdatePoi(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI updated successfully")
}

// DeletePoi godoc
// @Summary Delete a catalog POI
// @Description Remove a POI from the catalog (admin only)
// @Tags Catalog
// @Produce json
// @Param poiId path string true "POI id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /v1/catalog/pois/{poiId} [delete]
func (ct *CatalogController) DeletePoi(c *gin.Context) {
	if err := ct.catalogService.DeletePoi(c.Request.Context(), c.Param("poiId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI deleted successfully")
}

// Healthz godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /healthz [get]
func (ct *CatalogController) Healthz(c *gin.Context) {
	pois, err := ct.catalogService.Snapshot(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"status": "ok", "catalog_size": len(pois)}, "Service healthy")
}
