package handler

import (
	"errors"
	"movie_catalog/internal/service"
	"movie_catalog/model"
	"movie_catalog/pkg/response"
	"movie_catalog/pkg/validation"
	"movie_catalog/util"

	"github.com/gofiber/fiber/v2"
)

type IWatchlistHandler interface {
	Index(c *fiber.Ctx) error
	Toggle(c *fiber.Ctx) error
}

type WatchlistHandler struct {
	watchlistService service.IWatchlistService
}

func NewWatchlistHandler(watchlistService service.IWatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

//------------------------------------------
//------------------------------------------

// Index godoc
//
//	@Summary		List Watchlist
//	@Description	list the caller's watchlist entries with their films.
//	@Tags			Watchlist
//	@Success		200	{object}	response.ResponseOKWithDataModel
//	@Failure		401	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/watchlist [get]
func (m *WatchlistHandler) Index(c *fiber.Ctx) error {
	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)

	entries, err := m.watchlistService.FindByUserId(claims.UserId)
	if err != nil {
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, entries)
}

// Toggle godoc
//
//	@Summary		Toggle Watchlist
//	@Description	add the film to the caller's watchlist, or remove it when already present.
//	@Tags			Watchlist
//	@Param			watchlist	body		model.ToggleWatchlistReq	true	"film to toggle"
//	@Success		200			{object}	response.ResponseOKWithDataModel
//	@Failure		401,404,422	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/watchlist [post]
func (m *WatchlistHandler) Toggle(c *fiber.Ctx) error {
	var req model.ToggleWatchlistReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if fields := validation.ValidateStruct(&req); fields != nil {
		return response.ResponseValidationError(c, fields)
	}

	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)
	result, err := m.watchlistService.Toggle(claims.UserId, req.FilmID)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return response.ResponseError(c, response.FilmNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, result)
}
