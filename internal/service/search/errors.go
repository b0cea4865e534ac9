package search

import (
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

var (
	// ErrEmptyTerm 검색어가 비어 있거나 공백으로만 이루어졌을 때 반환됩니다.
	ErrEmptyTerm = apperrors.New(apperrors.InvalidInput, "검색어가 비어 있습니다")

	// ErrSessionNotFound 요청한 검색 세션이 존재하지 않을 때 반환됩니다.
	ErrSessionNotFound = apperrors.New(apperrors.NotFound, "검색 세션을 찾을 수 없습니다")

	// ErrRemoteTimeout 원격 저장소의 응답이 제한 시간 안에 도착하지 않았을 때 세션의 오류 목록에 기록됩니다.
	ErrRemoteTimeout = apperrors.New(apperrors.Timeout, "원격 저장소 요청 시간이 초과되었습니다. 사용자 이름, 토큰, 저장소 주소를 확인하세요")

	// ErrRateLimited 요청 속도 제한 설정으로 인해 원격 요청을 보낼 수 없을 때 세션의 오류 목록에 기록됩니다.
	ErrRateLimited = apperrors.New(apperrors.Unavailable, "요청 속도 제한 설정으로 인해 원격 저장소에 요청할 수 없습니다")
)
