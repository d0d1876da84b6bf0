package validation

import (
	"movie_catalog/pkg/response"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("mediafile", validateMediaFile)
	_ = validate.RegisterValidation("releasedyear", validateReleasedYear)
}

// validateMediaFile checks file-name fields against the allowed extension
// list given as the tag parameter, e.g. `mediafile=jpg png`.
func validateMediaFile(fl validator.FieldLevel) bool {
	extensions := fl.Param()
	if extensions == "" {
		return false
	}
	pattern := `^[a-zA-Z0-9-_]*[a-z0-9]\.(` + strings.ReplaceAll(extensions, " ", "|") + `)$`
	matched, err := regexp.MatchString(pattern, fl.Field().String())
	return err == nil && matched
}

// validateReleasedYear rejects films from the future.
func validateReleasedYear(fl validator.FieldLevel) bool {
	return int(fl.Field().Int()) <= time.Now().Year()
}

//---------------------------------------
//---------------------------------------

// ValidateStruct runs the validator tags of a request DTO and flattens the
// failures into field/message pairs for the error envelope.
func ValidateStruct(s interface{}) []response.ValidationErrorField {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.ValidationErrorField{{Field: "", Message: err.Error()}}
	}

	fields := make([]response.ValidationErrorField, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, response.ValidationErrorField{
			Field:   fieldName(fieldError),
			Message: fieldMessage(fieldError),
		})
	}
	return fields
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace is like "CreateCommentReq.CommentText"
	parts := strings.Split(fe.StructNamespace(), ".")
	name := parts[len(parts)-1]
	if name == "" {
		return fe.Field()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "min length/value is " + fe.Param()
	case "max":
		return "max length/value is " + fe.Param()
	case "gte":
		return "minimum value " + fe.Param()
	case "lte":
		return "maximum value " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "mongodb":
		return "must be a valid id"
	case "hexcolor":
		return "must be a hexadecimal color"
	case "mediafile":
		return "file name must use latin letters/digits and end with ." + fe.Param()
	case "releasedyear":
		return "cannot be in the future"
	default:
		return "failed on rule: " + fe.Tag()
	}
}
