// Package validation validates meshes and the documents they are loaded from.
// Struct rules use go-playground/validator; topology rules live in ValidateMesh.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance with the custom rules registered.
var Validate *validator.Validate

var (
	crsPattern      = regexp.MustCompile(`^(EPSG|epsg):[0-9]{4,6}$`)
	meshNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]*$`)
	sqlIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("crs", validateCRS)
	Validate.RegisterValidation("mesh_name", validateMeshName)
	Validate.RegisterValidation("sql_ident", validateSQLIdent)

	// Report JSON field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateStruct validates s with the shared validator and converts failures
// into ValidationErrors.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return formatValidationErrors(fieldErrs)
	}
	return err
}

func formatValidationErrors(fieldErrs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Namespace(),
			Value:   fe.Value(),
			Message: errorMessage(fe),
		})
	}
	return out
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("minimum value/length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("maximum value/length is %s", fe.Param())
	case "nefield":
		return fmt.Sprintf("must differ from %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "crs":
		return "must be an EPSG code such as EPSG:28992"
	case "mesh_name":
		return "must start with a letter or digit and contain only letters, digits, space, '_', '.', '-'"
	case "sql_ident":
		return "must be a plain SQL identifier: a letter or '_' followed by letters, digits or '_'"
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}

func validateCRS(fl validator.FieldLevel) bool {
	return crsPattern.MatchString(fl.Field().String())
}

func validateMeshName(fl validator.FieldLevel) bool {
	return meshNamePattern.MatchString(fl.Field().String())
}

func validateSQLIdent(fl validator.FieldLevel) bool {
	return sqlIdentPattern.MatchString(fl.Field().String())
}
