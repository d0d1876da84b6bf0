package handler

import (
	"errors"
	"movie_catalog/internal/service"
	"movie_catalog/model"
	"movie_catalog/pkg/response"
	"movie_catalog/pkg/validation"
	"movie_catalog/util"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type IUserHandler interface {
	Register(c *fiber.Ctx) error
	Login(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
	UploadAvatar(c *fiber.Ctx) error
}

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

//------------------------------------------
//------------------------------------------

// Register godoc
//
//	@Summary		Register User
//	@Description	create a new user account.
//	@Tags			User
//	@Param			user	body		model.RegisterUserReq	true	"user data"
//	@Success		201		{object}	model.UserRes
//	@Failure		409,422	{object}	response.ResponseErrorModel
//	@Router			/v1/users/register [post]
func (m *UserHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterUserReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if fields := validation.ValidateStruct(&req); fields != nil {
		return response.ResponseValidationError(c, fields)
	}

	res, err := m.userService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			return response.ResponseValidationError(c, []response.ValidationErrorField{
				{Field: "email", Message: "must be a valid address"},
			})
		}
		if errors.Is(err, service.ErrEmailAlreadyExist) {
			return response.ResponseError(c, response.EmailAlreadyExist, fiber.StatusConflict)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseCreated(c, res)
}

// Login godoc
//
//	@Summary		Login User
//	@Description	authenticate and receive access/refresh tokens.
//	@Tags			User
//	@Param			credentials	body		model.LoginUserReq	true	"credentials"
//	@Success		200			{object}	model.LoginUserRes
//	@Failure		401,422		{object}	response.ResponseErrorModel
//	@Router			/v1/users/login [post]
func (m *UserHandler) Login(c *fiber.Ctx) error {
	var req model.LoginUserReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if fields := validation.ValidateStruct(&req); fields != nil {
		return response.ResponseValidationError(c, fields)
	}

	res, err := m.userService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrUserPassNotMatch) {
			return response.ResponseError(c, response.UserPassNotMatch, fiber.StatusUnauthorized)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, res)
}

// Logout godoc
//
//	@Summary		Logout User
//	@Description	blacklist the refresh token.
//	@Tags			User
//	@Success		200	{object}	response.ResponseOKModel
//	@Failure		401	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/users/logout [delete]
func (m *UserHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Locals("refreshToken").(string)
	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)

	if err := m.userService.Logout(refreshToken, claims.ExpiresAt); err != nil {
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOK(c, "")
}

// UploadAvatar godoc
//
//	@Summary		Upload Avatar
//	@Description	upload the user's avatar image (jpg/png), stored as a square thumbnail.
//	@Tags			User
//	@Param			userId	path		int		true	"userId"
//	@Param			avatar	formData	file	true	"image file"
//	@Success		200			{object}	response.ResponseOKWithDataModel
//	@Failure		400,401,403	{object}	response.ResponseErrorModel
//	@Security		BearerAuth
//	@Router			/v1/users/:userId/avatar [post]
func (m *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	userId, err := strconv.ParseInt(c.Params("userId", ""), 10, 64)
	if err != nil {
		return response.ResponseError(c, "Invalid userId", fiber.StatusBadRequest)
	}

	claims := c.Locals("jwtUserData").(*util.MyJwtClaims)
	if claims.UserId != userId {
		return response.ResponseError(c, response.ForbiddenNotOwner, fiber.StatusForbidden)
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return response.ResponseError(c, "Missing avatar file", fiber.StatusBadRequest)
	}

	filename, err := m.userService.SaveAvatar(userId, file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageFile) {
			return response.ResponseError(c, response.InvalidImageFile, fiber.StatusBadRequest)
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return response.ResponseError(c, response.UserNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}

	return response.ResponseOKWithData(c, fiber.Map{"avatarPath": filename})
}
