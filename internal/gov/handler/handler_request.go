package handler

import (
	"net/http"

	"admingov/internal/gov/model"

	"github.com/labstack/echo/v4"
)

// PostRequest handles POST /requests
func (h *GovernanceHandler) PostRequest(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	created, err := h.Service.CreateRequest(c.Request().Context(), callerID, req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, created)
}

// PostRequestReview handles POST /requests/:id/review
func (h *GovernanceHandler) PostRequestReview(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	requestID := c.Param("id")

	var req model.ReviewRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	reviewed, err := h.Service.ReviewRequest(c.Request().Context(), callerID, requestID, req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, reviewed)
}

// GetRequest handles GET /requests/:id
func (h *GovernanceHandler) GetRequest(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	req, err := h.Service.GetRequest(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, req)
}

// GetRequests handles GET /requests
func (h *GovernanceHandler) GetRequests(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	filter := model.RequestFilter{
		TargetID:    c.QueryParam("target_id"),
		RequestedBy: c.QueryParam("requested_by"),
		RequestType: c.QueryParam("request_type"),
		Status:      c.QueryParam("status"),
	}

	requests, err := h.Service.ListRequests(c.Request().Context(), callerID, filter)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, requests)
}
