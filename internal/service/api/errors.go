package api

import (
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

// ErrServiceStopped 종료된 API 서비스를 다시 시작하려 할 때 반환하는 에러입니다.
var ErrServiceStopped = apperrors.New(apperrors.Unavailable, "API 서비스가 이미 종료되었습니다")
