package controllers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithBody(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestParseProductRequest(t *testing.T) {
	rv := NewRequestValidator()

	t.Run("valid payload with decimal price", func(t *testing.T) {
		c := contextWithBody(`{
			"title": "Dune",
			"description": "A desert planet saga",
			"media": ["https://cdn.example.com/dune.jpg"],
			"category": "sci-fi",
			"collections": ["64b0c0ffee0123456789abcd", "garbage"],
			"price": {"$numberDecimal": "12.50"},
			"expense": 4
		}`)

		input, err := rv.ParseProductRequest(c)
		require.NoError(t, err)
		assert.Equal(t, "Dune", input.Title)
		assert.Equal(t, 12.5, input.Price.Float64())
		assert.Equal(t, 4.0, input.Expense.Float64())
		assert.Len(t, input.Collections, 1, "unparseable collection ids are dropped")
	})

	t.Run("missing price", func(t *testing.T) {
		c := contextWithBody(`{
			"title": "Dune",
			"description": "A desert planet saga",
			"media": ["https://cdn.example.com/dune.jpg"],
			"category": "sci-fi",
			"expense": 4
		}`)

		_, err := rv.ParseProductRequest(c)
		assert.Error(t, err)
	})

	t.Run("price below minimum", func(t *testing.T) {
		c := contextWithBody(`{
			"title": "Dune",
			"description": "A desert planet saga",
			"media": ["https://cdn.example.com/dune.jpg"],
			"category": "sci-fi",
			"price": 0.01,
			"expense": 4
		}`)

		_, err := rv.ParseProductRequest(c)
		assert.Error(t, err)
	})

	t.Run("missing required fields", func(t *testing.T) {
		c := contextWithBody(`{"title": "Dune"}`)

		_, err := rv.ParseProductRequest(c)
		assert.Error(t, err)
	})
}

func TestParseCollectionRequest(t *testing.T) {
	rv := NewRequestValidator()

	t.Run("valid payload", func(t *testing.T) {
		c := contextWithBody(`{"title": "Classics", "image": "https://cdn.example.com/classics.jpg"}`)

		input, err := rv.ParseCollectionRequest(c)
		require.NoError(t, err)
		assert.Equal(t, services.CollectionInput{
			Title: "Classics",
			Image: "https://cdn.example.com/classics.jpg",
		}, input)
	})

	t.Run("missing image", func(t *testing.T) {
		c := contextWithBody(`{"title": "Classics"}`)

		_, err := rv.ParseCollectionRequest(c)
		assert.Error(t, err)
	})
}

func TestParseObjectID(t *testing.T) {
	rv := NewRequestValidator()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "productId", Value: "not-hex"}}

	_, err := rv.ParseObjectID(c, "productId")
	assert.EqualError(t, err, "invalid productId format")
}
