package handler

import (
	"net/http"

	apihandler "github.com/darkkaiser/scriptfinder/internal/service/api/handler"
	"github.com/darkkaiser/scriptfinder/internal/service/api/httputil"
	"github.com/darkkaiser/scriptfinder/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// StartSearchHandler 새로운 검색 세션을 시작합니다.
//
// 검색은 작업 실행기에서 계속 진행되므로 202 Accepted와 함께 세션의 현재 상태를 즉시 반환합니다.
// 클라이언트는 GET /api/v1/searches/:id 로 진행 상황을 조회합니다.
//
//	POST /api/v1/searches {"term":"Player"}
//
// @Summary 검색 시작
// @Description 파일 이름에 검색어가 포함된 스크립트를 로컬 검색 경로와 원격 저장소에서 찾는 검색 세션을 시작합니다.
// @Description 응답의 Location 헤더로 진행 상황을 조회할 수 있습니다.
// @Tags Search
// @Accept json
// @Produce json
// @Param search body request.SearchRequest true "검색어"
// @Success 202 {object} search.Snapshot "시작된 검색 세션"
// @Header 202 {string} Location "세션 조회 경로"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 (검색어 누락, JSON 형식 오류 등)"
// @Failure 415 {object} response.ErrorResponse "JSON이 아닌 요청 본문"
// @Failure 503 {object} response.ErrorResponse "작업 실행기가 중지됨"
// @Router /api/v1/searches [post]
func (h *Handler) StartSearchHandler(c echo.Context) error {
	req := new(request.SearchRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	if err := apihandler.ValidateRequest(req); err != nil {
		return NewErrValidationFailed(apihandler.FormatValidationError(err))
	}

	sess, err := h.searcher.Search(c.Request().Context(), req.Term)
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"session_id": sess.ID(),
		"term":       sess.Term(),
	}).Info("검색 시작 요청 성공")

	c.Response().Header().Set(echo.HeaderLocation, c.Echo().Reverse("v1.searches.get", sess.ID()))

	return c.JSON(http.StatusAccepted, sess.Snapshot())
}

// GetSearchHandler 검색 세션의 현재 상태와 지금까지의 결과를 반환합니다.
//
//	GET /api/v1/searches/:id
//
// @Summary 검색 조회
// @Description 검색 세션의 상태(running, completed, canceled)와 지금까지 찾은 결과를 반환합니다.
// @Tags Search
// @Produce json
// @Param id path string true "검색 세션 ID"
// @Success 200 {object} search.Snapshot "검색 세션"
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 세션"
// @Router /api/v1/searches/{id} [get]
func (h *Handler) GetSearchHandler(c echo.Context) error {
	sess, err := h.searcher.Get(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sess.Snapshot())
}

// CancelSearchHandler 진행 중인 검색 세션을 취소합니다. 이미 종료된 세션이면 아무것도 하지 않습니다.
//
//	DELETE /api/v1/searches/:id
//
// @Summary 검색 취소
// @Description 검색 세션이 시작한 작업들을 모두 중지합니다.
// @Tags Search
// @Produce json
// @Param id path string true "검색 세션 ID"
// @Success 200 {object} response.SuccessResponse "성공"
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 세션"
// @Router /api/v1/searches/{id} [delete]
func (h *Handler) CancelSearchHandler(c echo.Context) error {
	id := c.Param("id")

	if err := h.searcher.Cancel(c.Request().Context(), id); err != nil {
		return err
	}

	h.log(c).WithField("session_id", id).Info("검색 취소 요청 성공")

	return httputil.NewSuccessResponse(c)
}
