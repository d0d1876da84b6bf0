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

type ICommentHandler interface {
	Index(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
}

type CommentHandler struct {
	commentService service.ICommentService
}

func NewCommentHandler(commentService service.ICommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

//------------------------------------------
//------------------------------------------

// Index godoc
//
//	@Summary		List Film Comments
//	@Description	list a film's comments newest-first.
//	@Tags			Comment
//	@Param			filmId	path		string	true	"filmId"
//	@Success		200		{object}	response.ResponseOKWithDataModel
//	@Failure		404		{object}	response.ResponseErrorModel
//	@Router			/v1/films/:filmId/comments [get]
func (m *CommentHandler) Index(c *fiber.Ctx) error {
	filmId := c.Params("filmId", "")
	if filmId == "" || filmId == ":filmId" {
		return response.ResponseError(c, response.InvalidFilmId, fiber.StatusBadRequest)
	}

	comments, err := m.commentService.FindByFilmId(filmId)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return response.ResponseError(c, response.FilmNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, comments)
}

// Create godoc
//
//	@Summary		Create Comment
//	@Description	add a comment to a film and refresh the film's aggregated rating.
//	@Tags			Comment
//	@Param			comment	body		model.CreateCommentReq	true	"comment data"
//	@Success		201		{object}	response.ResponseOKWithDataModel
//	@Failure		401,404,422	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/comments [post]
func (m *CommentHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCommentReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if fields := validation.ValidateStruct(&req); fields != nil {
		return response.ResponseValidationError(c, fields)
	}

	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)
	comment, err := m.commentService.Create(claims.UserId, &req)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return response.ResponseError(c, response.FilmNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseCreated(c, comment)
}
