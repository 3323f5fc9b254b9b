package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradtracker/internal/app/models/dto"
	"github.com/yigit/gradtracker/internal/app/services"
	"github.com/yigit/gradtracker/internal/middleware"
	"github.com/yigit/gradtracker/internal/pkg/apperrors"
)

// GraduateController handles graduate registration, search and verification
type GraduateController struct {
	graduateService services.GraduateService
}

// NewGraduateController creates a new GraduateController
func NewGraduateController(graduateService services.GraduateService) *GraduateController {
	return &GraduateController{
		graduateService: graduateService,
	}
}

// Register handles graduate registration
// @Summary Register a graduate
// @Description Stores a graduate's destination. Destination, description and the security question and answer are encrypted at rest.
// @Description The aliases school, year, question and answer are accepted for highschool, graduation_year, security_question and security_answer.
// @Tags graduates
// @Accept json
// @Produce json
// @Param request body dto.RegisterGraduateRequest true "Graduate information"
// @Success 200 {object} dto.RegisterGraduateResponse "Graduate registered"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed field"
// @Failure 405 {object} dto.ErrorResponse "Method not allowed"
// @Failure 409 {object} dto.ErrorResponse "Name already registered"
// @Failure 413 {object} dto.ErrorResponse "Request body too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (c *GraduateController) Register(ctx *gin.Context) {
	var req dto.RegisterGraduateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.graduateService.Register(ctx.Request.Context(), req.Submission())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RegisterGraduateResponse{
		Success: true,
		ID:      id,
		Message: "Graduate registered successfully",
	})
}

// Search handles graduate search
// @Summary Search graduates
// @Description Case-insensitive substring match on name and highschool. Results are ordered by graduation year, newest first.
// @Description With no filter the result is empty. The security question is returned encrypted.
// @Tags graduates
// @Accept json
// @Produce json
// @Param request body dto.SearchGraduatesRequest false "Search filters"
// @Param name query string false "Name substring"
// @Param highschool query string false "Highschool substring"
// @Success 200 {object} dto.SearchGraduatesResponse "Matching graduates"
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /search [post]
// @Router /search [get]
func (c *GraduateController) Search(ctx *gin.Context) {
	var req dto.SearchGraduatesRequest
	if ctx.Request.Method == http.MethodGet {
		if !middleware.BindQuery(ctx, &req) {
			return
		}
	} else if !middleware.BindJSON(ctx, &req) {
		return
	}

	results, err := c.graduateService.Search(ctx.Request.Context(), req.Filter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SearchGraduatesResponse{
		Success: true,
		Count:   len(results),
		Data:    results,
	})
}

// Verify handles security answer verification
// @Summary Verify a security answer
// @Description Compares the answer with the stored one, ignoring case and surrounding whitespace.
// @Description A wrong answer is not an error: isCorrect is false and no details are returned.
// @Tags graduates
// @Accept json
// @Produce json
// @Param request body dto.VerifyAnswerRequest true "Record id and candidate answer"
// @Success 200 {object} dto.VerifyAnswerResponse "Verification outcome"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed field"
// @Failure 404 {object} dto.ErrorResponse "Graduate record not found"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verify [post]
func (c *GraduateController) Verify(ctx *gin.Context) {
	var req dto.VerifyAnswerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if strings.TrimSpace(req.ID.String()) == "" {
		middleware.HandleAPIError(ctx, apperrors.NewFieldError("id", "id is required"))
		return
	}
	id, err := req.ID.Int64()
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewFieldError("id", "id must be a positive integer"))
		return
	}

	result, err := c.graduateService.Verify(ctx.Request.Context(), id, req.Answer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VerifyAnswerResponse{
		Success:   true,
		IsCorrect: result.IsCorrect,
		Data:      result.Details,
	})
}
