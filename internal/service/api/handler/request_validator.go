// Package handler API 핸들러들이 공통으로 사용하는 요청 검증 기능을 제공합니다.
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 초기화된 validator 인스턴스를 반환합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지의 필드명으로 korean 태그 값을 사용합니다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
	})

	return validate
}

// ValidateRequest 구조체의 validate 태그를 기반으로 검증을 수행합니다.
func ValidateRequest(req any) error {
	return getValidator().Struct(req)
}

// FormatValidationError validator 에러를 사용자 친화적인 한글 메시지로 변환합니다.
// 여러 검증 에러가 있을 경우 첫 번째 에러만 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()
	isString := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s는 필수입니다", fieldName)
	case "min":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", fieldName, fieldErr.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", fieldName, fieldErr.Param())
	case "excludesall":
		return fmt.Sprintf("%s에 사용할 수 없는 문자가 포함되어 있습니다", fieldName)
	default:
		return fmt.Sprintf("%s 검증 실패: %s", fieldName, fieldErr.Tag())
	}
}
