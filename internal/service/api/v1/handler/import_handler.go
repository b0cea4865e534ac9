package handler

import (
	"net/http"

	apihandler "github.com/darkkaiser/scriptfinder/internal/service/api/handler"
	"github.com/darkkaiser/scriptfinder/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// ImportHandler 검색 결과 하나를 프로젝트의 가져오기 폴더로 복사합니다.
// 복사가 끝날 때까지 기다린 뒤 201 Created와 함께 저장된 위치를 반환합니다.
//
//	POST /api/v1/imports {"path":"https://.../Player.cs","name":"Player.cs"}
//
// 같은 이름의 파일이 이미 있으면 409 Conflict를 반환하며 기존 파일은 그대로 유지됩니다.
//
// @Summary 검색 결과 가져오기
// @Description 검색 결과 하나를 {import.project_dir}/Assets/{import.folder} 폴더로 복사합니다.
// @Description 로컬 파일은 search.local_paths 하위, 원격 파일은 remote.sources에 설정된 호스트에 있어야 합니다.
// @Tags Import
// @Accept json
// @Produce json
// @Param import body request.ImportRequest true "가져올 파일"
// @Success 201 {object} importer.Result "저장된 위치"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 (허용되지 않은 위치, 잘못된 파일 이름 등)"
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 원본 파일"
// @Failure 409 {object} response.ErrorResponse "같은 이름의 파일이 이미 존재함"
// @Failure 503 {object} response.ErrorResponse "원격 저장소 응답 오류"
// @Router /api/v1/imports [post]
func (h *Handler) ImportHandler(c echo.Context) error {
	req := new(request.ImportRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	if err := apihandler.ValidateRequest(req); err != nil {
		return NewErrValidationFailed(apihandler.FormatValidationError(err))
	}

	result, err := h.importer.Import(c.Request().Context(), req.Path, req.Name)
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"source": result.Source,
		"target": result.Target,
		"bytes":  result.Bytes,
	}).Info("파일 가져오기 요청 성공")

	return c.JSON(http.StatusCreated, result)
}
