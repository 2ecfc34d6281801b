package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/middleware"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService       *service.AuthService
	studentService    *service.StudentService
	instructorService *service.InstructorService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	studentService *service.StudentService,
	instructorService *service.InstructorService,
) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		studentService:    studentService,
		instructorService: instructorService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates username + password and returns a JWT. A login replaces any
// session the account holds on another device.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, account, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{
		Token:   token,
		Account: *account,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Invalidates the account's active session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.AccountID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated account plus its profile, when one exists.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	body := gin.H{
		"account": gin.H{
			"id":       claims.AccountID,
			"username": claims.Subject,
			"role":     claims.Role,
		},
	}

	switch claims.Role {
	case model.RoleStudent:
		student, err := h.studentService.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			failFromError(c, err)
			return
		}
		body["student"] = student
	case model.RoleInstructor:
		instructor, err := h.instructorService.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			failFromError(c, err)
			return
		}
		body["instructor"] = instructor
	}

	response.Success(c, http.StatusOK, body)
}

// ChangePassword godoc
// POST /api/v1/auth/password
// Rotates the authenticated account's password after checking the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), claims.Subject, req.Current, req.New); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated successfully"})
}
