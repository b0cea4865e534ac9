package api

import (
	_ "github.com/darkkaiser/scriptfinder/internal/service/api/docs"
	"github.com/darkkaiser/scriptfinder/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes 인증이 필요 없는 시스템 엔드포인트를 등록합니다.
//   - GET /health: 서비스 상태 확인
//   - GET /version: 버전 정보
//   - GET /swagger/*: Swagger UI 및 API 문서
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)

	registerSwaggerRoutes(e)
}

// registerSwaggerRoutes Swagger UI 라우트를 등록합니다.
func registerSwaggerRoutes(e *echo.Echo) {
	// Swagger UI 엔드포인트 설정
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
