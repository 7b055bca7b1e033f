package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	_ "time/tzdata" // timezone tag must not depend on the host zoneinfo

	"github.com/go-playground/validator/v10"

	formattererrors "phonefmt/internal/formatter/errors"
	"phonefmt/pkg/locale"
	"phonefmt/pkg/logger"
	"phonefmt/pkg/model"
)

const tagHomeRegion = "home_region"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type FormatValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFormatValidator(log *logger.Logger) *FormatValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation(tagHomeRegion, validateHomeRegion); err != nil {
		log.Fatal("Failed to register 'home_region' validator", "error", err)
	}

	return &FormatValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateHomeRegion(fl validator.FieldLevel) bool {
	return locale.IsSupportedRegion(fl.Field().String())
}

func (v *FormatValidator) Validate(req *model.FormatRequest) error {
	return v.validateStruct(req)
}

// ValidateBatch validates req and caps the number of entries at maxBatch.
func (v *FormatValidator) ValidateBatch(req *model.BatchFormatRequest, maxBatch int) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}
	if maxBatch > 0 && len(req.Numbers) > maxBatch {
		return ValidationErrors{{
			Field:   "numbers",
			Message: fmt.Sprintf("%v: got %d numbers, limit is %d", formattererrors.ErrBatchTooLarge, len(req.Numbers), maxBatch),
		}}
	}
	return nil
}

func (v *FormatValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *FormatValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must contain at least %s entries", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA timezone", err.Field())
		case tagHomeRegion:
			message = fmt.Sprintf("%s %q is not a supported region code", err.Field(), err.Value())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
