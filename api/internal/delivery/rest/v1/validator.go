package v1

import (
	"fmt"
	"gateway/api/internal/domain"
	"gateway/pkg/utils"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// amount - float - positive, capped
// currency - string - BRL / USD / EUR
// payment_method_id - uuid
// qr_id - optional uuid

var maxAmount = decimal.NewFromInt(10 << 20)

type NewPaymentData struct {
	AmountFloat     float64 `json:"amount" validate:"required,amount"`
	Currency        string  `json:"currency" validate:"required,oneof=BRL USD EUR"`
	UserID          string  `json:"user_id" validate:"required,uuid4"`
	PaymentMethodID string  `json:"payment_method_id" validate:"required,uuid4"`
	QrID            string  `json:"qr_id" validate:"omitempty,uuid4"`

	Amount decimal.Decimal `json:"-"` // used after validation
}

// checks the validity of data in query
// returns false if there is an error
func filterPaymentQuery(c *gin.Context) (*NewPaymentData, bool) {
	var data NewPaymentData
	err := c.ShouldBindJSON(&data)
	if err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	v := validator.New()

	v.RegisterValidation("amount", validateAmount)
	err = v.Struct(data)
	if err == nil {
		data.Amount = decimal.NewFromFloat(data.AmountFloat)

		return &data, true
	}

	validationErrs, err := utils.SafeCast[validator.ValidationErrors](err)
	if err != nil || validationErrs == nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	validationErr := validationErrs[0]
	responseErr(c, http.StatusBadRequest, formatValidationErr(data, validationErr), "")

	return nil, false
}

func validateAmount(fl validator.FieldLevel) bool {
	amount := decimal.NewFromFloat(fl.Field().Float())

	return amount.IsPositive() && amount.LessThanOrEqual(maxAmount)
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getJSONTag(data, err.Field())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, err.Param())
	case "uuid4":
		return fmt.Sprintf("field '%s' must be a valid uuid", jsonTag)
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters long", jsonTag, err.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", jsonTag, err.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", jsonTag, err.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", jsonTag, err.Param())
	//  custom tags
	case "amount":
		return fmt.Sprintf("field '%s' must be greater than 0 and less than %s", jsonTag, maxAmount)
	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}
}

func getJSONTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	field, _ := typ.FieldByName(fieldName)
	tag := field.Tag.Get("json")
	if tag == "" {
		return fieldName
	}
	return tag
}
