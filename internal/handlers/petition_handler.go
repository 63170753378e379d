package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/petism/backend/internal/models"
	"github.com/petism/backend/internal/repositories"
	"github.com/petism/backend/internal/services"
)

// PetitionHandler handles HTTP requests for petitions, signatures, comments
// and comment reactions
type PetitionHandler struct {
	service *services.PetitionService
}

// NewPetitionHandler creates a new PetitionHandler
func NewPetitionHandler(service *services.PetitionService) *PetitionHandler {
	return &PetitionHandler{service: service}
}

// RegisterPetitionRoutes registers petition-related routes. The route names
// keep the original /notes surface the frontend speaks.
func (h *PetitionHandler) RegisterPetitionRoutes(g *echo.Group) {
	g.GET("/notes", h.ListPetitions)
	g.GET("/notes/:id", h.GetPetition)
	g.POST("/notes", h.CreatePetition)
	g.PUT("/notes/:id", h.UpdatePetition)
	g.DELETE("/notes/:id", h.DeletePetition)
	g.POST("/notes/:id/like", h.SignPetition)
	g.POST("/notes/:id/comments", h.AddComment)
	g.POST("/notes/:id/comments/:commentId/like", h.LikeComment)
	g.POST("/notes/:id/comments/:commentId/dislike", h.DislikeComment)
}

// ListPetitions returns all petitions, newest first
func (h *PetitionHandler) ListPetitions(c echo.Context) error {
	petitions, err := h.service.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, petitions)
}

// GetPetition returns a single petition by id
func (h *PetitionHandler) GetPetition(c echo.Context) error {
	petition, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, petition)
}

// CreatePetition creates a new petition
func (h *PetitionHandler) CreatePetition(c echo.Context) error {
	var req models.CreatePetitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	petition, err := h.service.Create(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, petition)
}

// UpdatePetition edits a petition's title, content and image. Requires the
// petition secret.
func (h *PetitionHandler) UpdatePetition(c echo.Context) error {
	var req models.UpdatePetitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	petition, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Secret, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, petition)
}

// DeletePetition deletes a petition. Requires the petition secret.
func (h *PetitionHandler) DeletePetition(c echo.Context) error {
	var req models.DeletePetitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), req.Secret); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Petition deleted successfully!"})
}

// SignPetition records the authenticated caller's signature on a petition
func (h *PetitionHandler) SignPetition(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Sign(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// AddComment appends a comment to a petition
func (h *PetitionHandler) AddComment(c echo.Context) error {
	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.service.AddComment(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// LikeComment increments a comment's like counter
func (h *PetitionHandler) LikeComment(c echo.Context) error {
	return h.react(c, repositories.ReactionLike)
}

// DislikeComment increments a comment's dislike counter
func (h *PetitionHandler) DislikeComment(c echo.Context) error {
	return h.react(c, repositories.ReactionDislike)
}

func (h *PetitionHandler) react(c echo.Context, kind repositories.ReactionKind) error {
	comment, err := h.service.ReactToComment(c.Request().Context(), c.Param("id"), c.Param("commentId"), kind)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// callerIdentity derives the signature-dedup identity from the JWT claims
// placed in context by the auth middleware
func callerIdentity(c echo.Context) (string, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims.UserID == 0 {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
	}
	return strconv.FormatUint(uint64(claims.UserID), 10), nil
}

// httpError maps service errors onto the HTTP error taxonomy
func httpError(err error) error {
	switch {
	case errors.Is(err, services.ErrPetitionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Petition not found")
	case errors.Is(err, services.ErrCommentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrAlreadySigned):
		return echo.NewHTTPError(http.StatusBadRequest, "You have already signed this petition")
	case errors.Is(err, services.ErrEmptyComment):
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text is required")
	case errors.Is(err, services.ErrInvalidReaction):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction")
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Incorrect password")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
