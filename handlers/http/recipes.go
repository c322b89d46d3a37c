package httpHandler

import (
	"net/http"

	"recipe-server/entities"
	"recipe-server/logger"
	"recipe-server/session"
	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	useCase *usecases.RecipeUseCase
	logger  *logger.Logger
}

func NewRecipeHandler(useCase *usecases.RecipeUseCase, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		useCase: useCase,
		logger:  log,
	}
}

type RecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

// GetAllRecipes handles GET /recipes
func (h *RecipeHandler) GetAllRecipes(c *gin.Context) {
	recipes, err := h.useCase.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]entities.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, recipes[i].PublicView())
	}

	c.JSON(http.StatusOK, views)
}

// CreateRecipe handles POST /recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "Invalid request body")
		return
	}

	recipe, err := h.useCase.CreateRecipe(c.Request.Context(), session.UserID(c), usecases.RecipeInput{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, recipe.PublicView())
}
