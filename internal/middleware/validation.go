package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/validation"
)

// selfValidator is implemented by requests with rules that span fields
type selfValidator interface {
	Validate() []validation.FieldError
}

// BindAndValidate decodes the JSON body into obj and validates it. On failure
// it writes a 400 response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	var errs []validation.FieldError
	if v, ok := obj.(selfValidator); ok {
		errs = v.Validate()
	} else {
		errs = validation.Struct(obj)
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(errs))
		return false
	}
	return true
}
