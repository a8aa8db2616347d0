package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal is a struct; expose its float value so numeric rules
	// (required, gt, ...) apply to the amount rather than the struct fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body and runs struct validation,
// responding 422 with per-field messages on failure.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Malformed request body: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery decodes query parameters into a filter struct and validates it.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Malformed query parameters: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed on rule '" + fe.Tag() + "'"
			}
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
			return false
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Validation failed"))
		return false
	}
	return true
}

// pathUUID parses a :id style path parameter, responding 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; the real error is logged by
// the request logger via the status code.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apierror.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, apierror.ErrInvalidState):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, apierror.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, apierror.ErrDuplicate):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, apierror.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}
