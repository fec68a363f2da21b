package controllers

import (
	"net/http"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/logger"
	"bookrental-admin/middleware"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CollectionController struct {
	catalog   services.CatalogService
	validator *RequestValidator
}

func NewCollectionController(catalog services.CatalogService) *CollectionController {
	return &CollectionController{catalog: catalog, validator: NewRequestValidator()}
}

// GetCollections lists all collections, newest first.
func (cc *CollectionController) GetCollections(c *gin.Context) {
	collections, err := cc.catalog.ListCollections(c.Request.Context())
	if err != nil {
		logger.Error(c, "Failed to fetch collections", err)
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, collections)
}

// CreateCollection creates a collection owned by the authenticated admin.
func (cc *CollectionController) CreateCollection(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	input, err := cc.validator.ParseCollectionRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and image are required"})
		return
	}

	collection, err := cc.catalog.CreateCollection(c.Request.Context(), userID, input)
	if err != nil {
		logger.Error(c, "Failed to create collection", err)
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collection)
}

// GetCollection returns a collection with its products populated.
func (cc *CollectionController) GetCollection(c *gin.Context) {
	id, err := cc.validator.ParseObjectID(c, "collectionId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	collection, err := cc.catalog.GetCollection(c.Request.Context(), id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

// UpdateCollection updates a collection's title, description and image.
func (cc *CollectionController) UpdateCollection(c *gin.Context) {
	id, err := cc.validator.ParseObjectID(c, "collectionId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	input, err := cc.validator.ParseCollectionRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and image are required"})
		return
	}

	collection, err := cc.catalog.UpdateCollection(c.Request.Context(), id, input)
	if err != nil {
		logger.Error(c, "Failed to update collection", err, zap.String("collection_id", id.Hex()))
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

// DeleteCollection deletes a collection and detaches it from its products.
func (cc *CollectionController) DeleteCollection(c *gin.Context) {
	id, err := cc.validator.ParseObjectID(c, "collectionId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := cc.catalog.DeleteCollection(c.Request.Context(), id); err != nil {
		logger.Error(c, "Failed to delete collection", err, zap.String("collection_id", id.Hex()))
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}
