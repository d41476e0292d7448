package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmdev/school-records-api/internal/service"
	appErrors "github.com/kmdev/school-records-api/pkg/errors"
	"github.com/kmdev/school-records-api/pkg/response"
)

// TestHandler wires the test record service to HTTP routes.
type TestHandler struct {
	tests *service.TestService
}

// NewTestHandler constructs a new TestHandler.
func NewTestHandler(tests *service.TestService) *TestHandler {
	return &TestHandler{tests: tests}
}

// List godoc
// @Summary List test records
// @Tags Tests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tests [get]
func (h *TestHandler) List(c *gin.Context) {
	tests, err := h.tests.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tests)
}

// Get godoc
// @Summary Get test record detail
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} response.Envelope
// @Router /tests/{id} [get]
func (h *TestHandler) Get(c *gin.Context) {
	test, err := h.tests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, test)
}

// Create godoc
// @Summary Record a test result
// @Tags Tests
// @Accept json
// @Produce json
// @Param payload body service.CreateTestRequest true "Test payload"
// @Success 201 {object} response.Envelope
// @Router /tests [post]
func (h *TestHandler) Create(c *gin.Context) {
	var req service.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid test payload"))
		return
	}
	test, err := h.tests.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, test)
}

// Update godoc
// @Summary Update test record
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID"
// @Param payload body service.UpdateTestRequest true "Partial test payload"
// @Success 200 {object} response.Envelope
// @Router /tests/{id} [put]
func (h *TestHandler) Update(c *gin.Context) {
	var req service.UpdateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid test payload"))
		return
	}
	test, err := h.tests.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, test)
}

// Delete godoc
// @Summary Delete test record
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} response.Envelope
// @Router /tests/{id} [delete]
func (h *TestHandler) Delete(c *gin.Context) {
	if err := h.tests.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "test deleted"})
}
