package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/application"
	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/pkg/response"
)

const maxImageSize = 5 << 20

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type createIngredientRequest struct {
	Name     string  `json:"name" binding:"required,max=128"`
	Calories float64 `json:"calories" binding:"gte=0"`
	Quantity float64 `json:"quantity" binding:"gte=0"`
	Unit     string  `json:"unit" binding:"max=32"`
}

type createRecipeRequest struct {
	Name        string   `json:"name" binding:"required,max=128"`
	Category    string   `json:"category" binding:"required,mealcategory"`
	Ingredients []string `json:"ingredients" binding:"dive,required"`
}

func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	items, err := h.Svc.ListIngredients(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "ingredients", gin.H{"count": len(items)})
}

func (h *CatalogHandler) CreateIngredient(c *gin.Context) {
	var req createIngredientRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := h.Svc.CreateIngredient(c.Request.Context(), entity.Ingredient{
		Name:     req.Name,
		Calories: req.Calories,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, in, "ingredient created", nil)
}

func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.Svc.ListRecipes(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, recipes, "recipes", gin.H{"count": len(recipes)})
}

func (h *CatalogHandler) CreateRecipe(c *gin.Context) {
	var req createRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	rc, err := h.Svc.CreateRecipe(c.Request.Context(), application.CreateRecipeInput{
		Name:        req.Name,
		Category:    req.Category,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	counters.Add(metricRecipesCreated, 1)
	response.Success(c, http.StatusCreated, rc, "recipe created", nil)
}

// SearchRecipes GET /recipes/search?q=&size=
func (h *CatalogHandler) SearchRecipes(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	recipes, err := h.Svc.SearchRecipes(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, recipes, "search results", gin.H{"count": len(recipes)})
}

// UploadImage POST /recipes/:id/image, multipart field "image".
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	if fh.Size > maxImageSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusUnsupportedMediaType, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadRecipeImage(c.Request.Context(), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	counters.Add(metricImagesUploaded, 1)
	response.Success(c, http.StatusOK, gin.H{"image_url": url}, "image uploaded", nil)
}
