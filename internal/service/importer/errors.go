package importer

import (
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

var (
	// ErrAlreadyExists 가져올 위치에 같은 이름의 파일이 이미 있을 때 반환됩니다. 기존 파일은 덮어쓰지 않습니다.
	ErrAlreadyExists = apperrors.New(apperrors.Conflict, "가져올 위치에 같은 이름의 파일이 이미 존재합니다")

	// ErrSourceNotAllowed 검색 경로 밖의 로컬 파일이나 설정되지 않은 호스트의 URL을 가져오려 할 때 반환됩니다.
	ErrSourceNotAllowed = apperrors.New(apperrors.InvalidInput, "가져오기가 허용되지 않은 위치입니다")

	// ErrEmptySource 가져올 파일의 경로가 비어 있을 때 반환됩니다.
	ErrEmptySource = apperrors.New(apperrors.InvalidInput, "가져올 파일의 경로가 비어 있습니다")
)
