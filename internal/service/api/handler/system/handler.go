// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 시스템 수준의 API를 처리합니다.
package system

import (
	"fmt"
	"net/http"
	"time"

	"github.com/darkkaiser/scriptfinder/internal/pkg/version"
	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/api/model/system"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// HealthChecker 상태를 확인할 수 있는 의존성입니다. runner.Service가 구현합니다.
type HealthChecker interface {
	Health() error
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	taskRunner HealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. taskRunner가 nil이면 의존성 상태를 보고하지 않습니다.
func NewHandler(taskRunner HealthChecker, buildInfo version.Info) *Handler {
	return &Handler{
		taskRunner: taskRunner,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버와 작업 실행기의 상태를 반환합니다.
// 작업 실행기가 중지되었으면 전체 상태는 unhealthy입니다.
//
// @Summary 서버 헬스체크
// @Description 서버와 작업 실행기의 상태를 확인합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := make(map[string]system.DependencyStatus)
	status := constants.HealthStatusHealthy

	if h.taskRunner != nil {
		if err := h.taskRunner.Health(); err != nil {
			status = constants.HealthStatusUnhealthy
			deps[constants.DependencyTaskRunner] = system.DependencyStatus{
				Status:  constants.HealthStatusUnhealthy,
				Message: err.Error(),
			}
		} else {
			deps[constants.DependencyTaskRunner] = system.DependencyStatus{
				Status:  constants.HealthStatusHealthy,
				Message: constants.MsgDepStatusHealthy,
			}
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

// VersionHandler 서버의 버전, 커밋 해시, 빌드 날짜, Go 버전을 반환합니다.
//
// @Summary 서버 버전 정보
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
		Platform:  fmt.Sprintf("%s/%s", h.buildInfo.OS, h.buildInfo.Arch),
	})
}
