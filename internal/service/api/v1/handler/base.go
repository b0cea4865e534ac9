// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 요청을 바인딩하고 검증한 뒤, 검색 서비스와 가져오기 서비스를 호출하여 응답을 생성합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/importer"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// Searcher 검색 세션을 관리하는 인터페이스입니다. search.Service가 구현합니다.
type Searcher interface {
	Search(ctx context.Context, term string) (*search.Session, error)
	Get(id string) (*search.Session, error)
	Cancel(ctx context.Context, id string) error
}

// Importer 파일을 가져오는 인터페이스입니다. importer.Service가 구현합니다.
type Importer interface {
	Import(ctx context.Context, src, name string) (importer.Result, error)
}

// Handler v1 API 요청을 처리하고 서비스 계층을 연결하는 핸들러입니다.
type Handler struct {
	searcher Searcher
	importer Importer
}

// New Handler 인스턴스를 생성합니다. 의존성이 nil이면 panic이 발생합니다.
func New(searcher Searcher, importer Importer) *Handler {
	if searcher == nil {
		panic(constants.PanicMsgSearcherRequired)
	}
	if importer == nil {
		panic(constants.PanicMsgImporterRequired)
	}

	return &Handler{
		searcher: searcher,
		importer: importer,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
