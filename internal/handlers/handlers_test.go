package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Success(c, fiber.Map{"value": 42})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Empty(t, out.Error)
	assert.Nil(t, out.Meta)
}

func TestSuccessWithMetaEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SuccessWithMeta(c, []int{1, 2}, &Meta{Total: 10, Limit: 2, Offset: 0})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Meta)
	assert.Equal(t, 10, out.Meta.Total)
	assert.Equal(t, 2, out.Meta.Limit)
}

func TestErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusUnprocessableEntity, "no text could be extracted from the image")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Equal(t, "no text could be extracted from the image", out.Error)
}

func TestErrorHandlerWrapsFiberErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Receipt not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Equal(t, "Receipt not found", out.Error)
}

func TestIsValidImageType(t *testing.T) {
	assert.True(t, isValidImageType("image/jpeg"))
	assert.True(t, isValidImageType("image/png"))
	assert.True(t, isValidImageType("image/webp"))
	assert.False(t, isValidImageType("application/pdf"))
	assert.False(t, isValidImageType(""))
}

func TestGenerateS3Key(t *testing.T) {
	key := generateS3Key(7, "photo.png")
	assert.Regexp(t, `^receipts/7/\d+\.png$`, key)

	key = generateS3Key(7, "noext")
	assert.Regexp(t, `^receipts/7/\d+\.jpg$`, key)
}
