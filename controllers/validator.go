package controllers

import (
	"errors"
	"fmt"

	"bookrental-admin/models"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionRequest defines the expected structure for creating or updating
// a collection.
type CollectionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required"`
}

// ProductRequest defines the expected structure for creating or updating a
// product. Collection ids arrive as hex strings from the dashboard forms.
type ProductRequest struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Media       []string     `json:"media" validate:"required,min=1"`
	Category    string       `json:"category" validate:"required"`
	Collections []string     `json:"collections"`
	Tags        []string     `json:"tags"`
	Sizes       []string     `json:"sizes"`
	Colors      []string     `json:"colors"`
	Price       models.Price `json:"price"`
	Expense     models.Price `json:"expense"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ParseObjectID validates a path parameter as a document id.
func (rv *RequestValidator) ParseObjectID(c *gin.Context, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s format", param)
	}
	return id, nil
}

// ParseCollectionRequest validates and parses a collection payload.
func (rv *RequestValidator) ParseCollectionRequest(c *gin.Context) (services.CollectionInput, error) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.CollectionInput{}, errors.New("invalid request format")
	}
	if err := rv.validate.Struct(&req); err != nil {
		return services.CollectionInput{}, errors.New("title and image are required")
	}
	return services.CollectionInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	}, nil
}

// ParseProductRequest validates and parses a product payload. Unparseable
// collection ids are dropped rather than rejected, matching the permissive
// shape the dashboard forms send.
func (rv *RequestValidator) ParseProductRequest(c *gin.Context) (services.ProductInput, error) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.ProductInput{}, errors.New("invalid request format")
	}
	if err := rv.validate.Struct(&req); err != nil {
		return services.ProductInput{}, errors.New("not enough data to create a product")
	}
	if !req.Price.IsSet() || req.Price.Float64() < 0.1 {
		return services.ProductInput{}, errors.New("price must be at least 0.1")
	}
	if !req.Expense.IsSet() || req.Expense.Float64() < 0.1 {
		return services.ProductInput{}, errors.New("expense must be at least 0.1")
	}

	collectionIDs := make([]primitive.ObjectID, 0, len(req.Collections))
	for _, raw := range req.Collections {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			collectionIDs = append(collectionIDs, id)
		}
	}

	return services.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Media:       req.Media,
		Category:    req.Category,
		Collections: collectionIDs,
		Tags:        req.Tags,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Price:       req.Price,
		Expense:     req.Expense,
	}, nil
}
