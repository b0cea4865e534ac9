// Package v1 /api/v1 경로 하위의 엔드포인트를 정의합니다.
//
// 주요 엔드포인트:
//   - POST   /api/v1/searches     - 검색 시작
//   - GET    /api/v1/searches/:id - 검색 상태 및 결과 조회
//   - DELETE /api/v1/searches/:id - 검색 취소
//   - POST   /api/v1/imports      - 검색 결과 가져오기
package v1

import (
	"github.com/darkkaiser/scriptfinder/internal/service/api/middleware"
	"github.com/darkkaiser/scriptfinder/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
// 본문을 받는 엔드포인트에는 JSON Content-Type 검증을 적용합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	g := e.Group("/api/v1")

	jsonOnly := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	g.POST("/searches", h.StartSearchHandler, jsonOnly)
	g.GET("/searches/:id", h.GetSearchHandler).Name = "v1.searches.get"
	g.DELETE("/searches/:id", h.CancelSearchHandler)

	g.POST("/imports", h.ImportHandler, jsonOnly)
}
