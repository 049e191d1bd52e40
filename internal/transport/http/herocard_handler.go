package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

type HeroCardHandler struct {
	cards *service.HeroCardService
}

func RegisterHeroCards(e *echo.Echo, auth *service.AuthService, cards *service.HeroCardService) {
	h := &HeroCardHandler{cards: cards}

	g := e.Group("/api/hero-cards")
	g.GET("", h.listActive)
	g.GET("/admin", h.listAll, RequireAuth(auth), RequireAdmin())
	g.GET("/:id", h.get)

	admin := g.Group("", RequireAuth(auth), RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.PUT("/:id/toggle", h.toggle)
	admin.DELETE("/:id", h.delete)
}

func (h *HeroCardHandler) listActive(c echo.Context) error {
	cards, err := h.cards.ListActive(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(cards, len(cards)))
}

func (h *HeroCardHandler) listAll(c echo.Context) error {
	cards, err := h.cards.ListAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(cards, len(cards)))
}

func (h *HeroCardHandler) get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Hero card not found"))
	}
	card, err := h.cards.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, service.ErrHeroCardNotFound, "Hero card not found")
	}
	return c.JSON(http.StatusOK, util.OK(card))
}

func (h *HeroCardHandler) create(c echo.Context) error {
	var input service.HeroCardInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}
	card, err := h.cards.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err, service.ErrHeroCardNotFound, "Hero card not found")
	}
	return c.JSON(http.StatusCreated, util.OKMessage("Hero card created successfully", card))
}

func (h *HeroCardHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Hero card not found"))
	}
	var input service.HeroCardInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}
	card, err := h.cards.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err, service.ErrHeroCardNotFound, "Hero card not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Hero card updated successfully", card))
}

func (h *HeroCardHandler) toggle(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Hero card not found"))
	}
	card, err := h.cards.Toggle(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, service.ErrHeroCardNotFound, "Hero card not found")
	}
	message := "Hero card deactivated successfully"
	if card.IsActive {
		message = "Hero card activated successfully"
	}
	return c.JSON(http.StatusOK, util.OKMessage(message, card))
}

func (h *HeroCardHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Hero card not found"))
	}
	if err := h.cards.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, service.ErrHeroCardNotFound, "Hero card not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Hero card deleted successfully", nil))
}
