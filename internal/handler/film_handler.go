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

type IFilmHandler interface {
	Index(c *fiber.Ctx) error
	IndexByGenre(c *fiber.Ctx) error
	Show(c *fiber.Ctx) error
	ShowPromo(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type FilmHandler struct {
	filmService service.IFilmService
}

func NewFilmHandler(filmService service.IFilmService) *FilmHandler {
	return &FilmHandler{
		filmService: filmService,
	}
}

//------------------------------------------
//------------------------------------------

// viewerId resolves the optional authenticated viewer set by the soft-auth
// middleware. Anonymous requests return nil.
func viewerId(c *fiber.Ctx) *int64 {
	claims, ok := c.Locals("jwtUserData").(*util.MyJwtClaims)
	if !ok || claims == nil {
		return nil
	}
	return &claims.UserId
}

// Index godoc
//
//	@Summary		List Films
//	@Description	list films newest-first, annotated with the viewer's isFavorite flag.
//	@Tags			Film
//	@Param			limit	query		int	false	"max films returned"
//	@Success		200		{object}	response.ResponseOKWithDataModel
//	@Failure		500		{object}	response.ResponseErrorModel
//	@Router			/v1/films [get]
func (m *FilmHandler) Index(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 0))

	films, err := m.filmService.List("", limit, viewerId(c))
	if err != nil {
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, films)
}

// IndexByGenre godoc
//
//	@Summary		List Films By Genre
//	@Description	list films of one genre; genre token is case-normalized ("comedy" matches "Comedy").
//	@Tags			Film
//	@Param			genre	path		string	true	"genre"
//	@Param			limit	query		int		false	"max films returned"
//	@Success		200		{object}	response.ResponseOKWithDataModel
//	@Failure		400		{object}	response.ResponseErrorModel
//	@Router			/v1/films/genre/:genre [get]
func (m *FilmHandler) IndexByGenre(c *fiber.Ctx) error {
	genre := c.Params("genre", "")
	if genre == "" || genre == ":genre" {
		return response.ResponseError(c, response.InvalidGenre, fiber.StatusBadRequest)
	}
	limit := int64(c.QueryInt("limit", 0))

	films, err := m.filmService.List(genre, limit, viewerId(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidGenre) {
			return response.ResponseError(c, response.InvalidGenre, fiber.StatusBadRequest)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, films)
}

// Show godoc
//
//	@Summary		Get Film
//	@Description	fetch one film with its owner profile.
//	@Tags			Film
//	@Param			filmId	path		string	true	"filmId"
//	@Success		200		{object}	response.ResponseOKWithDataModel
//	@Failure		404		{object}	response.ResponseErrorModel
//	@Router			/v1/films/:filmId [get]
func (m *FilmHandler) Show(c *fiber.Ctx) error {
	filmId := c.Params("filmId", "")
	if filmId == "" || filmId == ":filmId" {
		return response.ResponseError(c, response.InvalidFilmId, fiber.StatusBadRequest)
	}

	film, err := m.filmService.FindById(filmId)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return response.ResponseError(c, response.FilmNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, film)
}

// ShowPromo godoc
//
//	@Summary		Get Promo Film
//	@Description	fetch the promoted film.
//	@Tags			Film
//	@Success		200	{object}	response.ResponseOKWithDataModel
//	@Failure		404	{object}	response.ResponseErrorModel
//	@Router			/v1/films/promo [get]
func (m *FilmHandler) ShowPromo(c *fiber.Ctx) error {
	film, err := m.filmService.FindPromo()
	if err != nil {
		if errors.Is(err, service.ErrPromoFilmNotFound) {
			return response.ResponseError(c, response.PromoFilmNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, film)
}

//------------------------------------------
//------------------------------------------

// Create godoc
//
//	@Summary		Create Film
//	@Description	create a film owned by the caller. rating/commentCount start at 0.
//	@Tags			Film
//	@Param			film	body		model.CreateFilmReq	true	"film data"
//	@Success		201		{object}	response.ResponseOKWithDataModel
//	@Failure		401,409,422	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/films [post]
func (m *FilmHandler) Create(c *fiber.Ctx) error {
	var req model.CreateFilmReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if fields := validation.ValidateStruct(&req); fields != nil {
		return response.ResponseValidationError(c, fields)
	}

	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)
	film, err := m.filmService.Create(claims.UserId, &req)
	if err != nil {
		if errors.Is(err, service.ErrFilmNameAlreadyExist) {
			return response.ResponseError(c, response.FilmNameAlreadyExist, fiber.StatusConflict)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseCreated(c, film)
}

// Update godoc
//
//	@Summary		Update Film
//	@Description	patch the film's non-derived fields. Owner only.
//	@Tags			Film
//	@Param			filmId	path		string				true	"filmId"
//	@Param			film	body		model.UpdateFilmReq	true	"fields to update"
//	@Success		200		{object}	response.ResponseOKWithDataModel
//	@Failure		401,403,404,422	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/films/:filmId [patch]
func (m *FilmHandler) Update(c *fiber.Ctx) error {
	filmId := c.Params("filmId", "")
	if filmId == "" || filmId == ":filmId" {
		return response.ResponseError(c, response.InvalidFilmId, fiber.StatusBadRequest)
	}

	var req model.UpdateFilmReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if fields := validation.ValidateStruct(&req); fields != nil {
		return response.ResponseValidationError(c, fields)
	}

	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)
	film, err := m.filmService.Update(filmId, claims.UserId, &req)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return response.ResponseError(c, response.FilmNotFound, fiber.StatusNotFound)
		}
		if errors.Is(err, service.ErrNotOwner) {
			return response.ResponseError(c, response.ForbiddenNotOwner, fiber.StatusForbidden)
		}
		if errors.Is(err, service.ErrFilmNameAlreadyExist) {
			return response.ResponseError(c, response.FilmNameAlreadyExist, fiber.StatusConflict)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, film)
}

// Delete godoc
//
//	@Summary		Delete Film
//	@Description	delete the film and cascade its comments and watchlist entries. Owner only.
//	@Tags			Film
//	@Param			filmId	path		string	true	"filmId"
//	@Success		204
//	@Failure		401,403,404	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/films/:filmId [delete]
func (m *FilmHandler) Delete(c *fiber.Ctx) error {
	filmId := c.Params("filmId", "")
	if filmId == "" || filmId == ":filmId" {
		return response.ResponseError(c, response.InvalidFilmId, fiber.StatusBadRequest)
	}

	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)
	err := m.filmService.Delete(filmId, claims.UserId)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return response.ResponseError(c, response.FilmNotFound, fiber.StatusNotFound)
		}
		if errors.Is(err, service.ErrNotOwner) {
			return response.ResponseError(c, response.ForbiddenNotOwner, fiber.StatusForbidden)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseNoContent(c)
}
