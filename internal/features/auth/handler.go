package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/katdzy/studentFreedomWall/internal/config"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	"github.com/katdzy/studentFreedomWall/internal/pkg/token"
	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

// Handler handles operator authentication requests
type Handler struct {
	repo *Repository
	cfg  *config.Config
}

// NewHandler creates a new auth handler
func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, cfg: cfg}
}

// Login godoc
// @Summary Operator login
// @Description Validate operator credentials and issue a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=LoginResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required", "INVALID_REQUEST")
		return
	}

	admin, err := h.repo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// Same message for unknown user and bad password
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	signed, err := token.Generate(admin.ID.Hex(), admin.Username, h.cfg.JWTSecret, h.cfg.JWTExpireHours)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "TOKEN_ERROR")
		return
	}

	response.Success(c, LoginResponse{
		Token: signed,
		Admin: AdminProfile{ID: admin.ID, Username: admin.Username, Email: admin.Email},
	})
}

// Signup godoc
// @Summary Operator signup
// @Description Create an operator account, gated by the authorization word
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Account details"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/admin/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "All fields are required", "INVALID_REQUEST")
		return
	}

	if h.cfg.AdminSignupWord == "" || req.SecretWord != h.cfg.AdminSignupWord {
		response.Unauthorized(c, "Invalid authorization word", "INVALID_SIGNUP_WORD")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to create account", "HASH_ERROR")
		return
	}

	admin := &Admin{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := h.repo.Create(c.Request.Context(), admin); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.BadRequest(c, "Admin with this username or email already exists", "DUPLICATE_ADMIN")
			return
		}
		response.InternalServerError(c, "Failed to create account", "DATABASE_ERROR")
		return
	}

	response.Created(c, gin.H{"message": "Admin account created successfully"})
}

// Setup godoc
// @Summary Bootstrap default operator
// @Description Create the default operator account if none exists
// @Tags auth
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/admin/setup [post]
func (h *Handler) Setup(c *gin.Context) {
	exists, err := h.repo.Exists(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to check existing admins", "DATABASE_ERROR")
		return
	}
	if exists {
		response.BadRequest(c, "Admin already exists", "ADMIN_EXISTS")
		return
	}

	password := h.cfg.AdminSignupWord
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to create account", "HASH_ERROR")
		return
	}

	admin := &Admin{
		Username:     "admin",
		Email:        "admin@freedomwall.local",
		PasswordHash: string(hash),
	}

	if err := h.repo.Create(c.Request.Context(), admin); err != nil {
		response.InternalServerError(c, "Failed to create account", "DATABASE_ERROR")
		return
	}

	response.Success(c, gin.H{"message": "Admin created successfully"})
}
