package response

const (
	ServerError = "Server error, try again later"
	//----------------------
	FilmNotFound         = "Film not found"
	FilmsNotFound        = "Films not found"
	PromoFilmNotFound    = "Promo film not found"
	CommentsNotFound     = "Comments not found"
	InvalidFilmId        = "Invalid filmId"
	InvalidGenre         = "Invalid genre"
	FilmNameAlreadyExist = "Film with this name already exists"
	//----------------------
	UserNotFound      = "Cannot find user"
	EmailNotFound     = "Cannot find user email"
	EmailAlreadyExist = "This email already exists"
	UserPassNotMatch  = "Email and password do not match"
	//----------------------
	InvalidRefreshToken = "Invalid RefreshToken"
	InvalidToken        = "Invalid/Stale Token"
	//----------------------
	ForbiddenNotOwner = "Forbidden, resource belongs to another user"
	//----------------------
	BadRequestBody = "Incorrect request body"
	//----------------------
	InvalidImageFile = "Only jpg/png image files are accepted"
	//----------------------
)
