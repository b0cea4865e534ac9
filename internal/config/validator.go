package config

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 구조체 필드명 대신 JSON 이름(예: local_paths)을 보여주도록 설정합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("http_url", validateHTTPURL); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'http_url' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("relative_path", validateRelativePath); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'relative_path' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateHTTPURL 실제 검증은 validation.ValidateHTTPURL로 위임하는 어댑터입니다.
func validateHTTPURL(fl validator.FieldLevel) bool {
	return validation.ValidateHTTPURL(fl.Field().String()) == nil
}

// validateRelativePath 실제 검증은 validation.ValidateRelativePath로 위임하는 어댑터입니다.
func validateRelativePath(fl validator.FieldLevel) bool {
	return validation.ValidateRelativePath(fl.Field().String()) == nil
}

// checkStruct 구조체 인스턴스의 유효성을 태그 규칙에 따라 검증하고, 발생한 오류를 사용자 친화적인 도메인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	// 첫 번째 에러만 상세히 보고
	firstErr := validationErrors[0]

	switch firstErr.StructField() {
	case "TickInterval":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Tick 주기(tick_interval)는 1ms에서 1s 사이의 값이어야 합니다: '%v'", firstErr.Value()))
	case "Timeout":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("원격 요청 제한 시간(timeout)은 100ms 이상이어야 합니다: '%v'", firstErr.Value()))
	case "ListenHost":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("API 서버 주소(listen_host)는 IP 주소 또는 호스트 이름이어야 합니다: '%v'", firstErr.Value()))
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "API 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "Extension":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("검색 대상 확장자(extension)는 '.'으로 시작해야 합니다: '%v'", firstErr.Value()))
	}

	switch firstErr.Tag() {
	case "unique":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 내에 중복된 %s ID가 존재합니다 (설정 값을 확인해주세요)", contextName, firstErr.Field()))
	case "http_url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 URL 형식이 올바르지 않습니다: '%v' (http 또는 https URL이어야 합니다)", contextName, firstErr.Value()))
	case "relative_path":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 %s는 프로젝트 내부의 상대 경로여야 합니다: '%v'", contextName, firstErr.Field(), firstErr.Value()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Field(), firstErr.Tag()))
}

// checkUniqueField 슬라이스 내의 특정 필드 값이 유일한지 검사합니다.
func checkUniqueField(v *validator.Validate, data any, fieldName, contextName string) error {
	if err := v.Var(data, "unique="+fieldName); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				if fieldErr.Tag() == "unique" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("중복된 %s ID가 존재합니다", contextName))
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유일성 검증에 실패했습니다", contextName))
	}
	return nil
}
