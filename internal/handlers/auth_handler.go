package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/scheduling-api/internal/config"
	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
	"github.com/BruksfildServices01/scheduling-api/internal/models"
	"github.com/BruksfildServices01/scheduling-api/internal/validators"
)

type OperatorStore interface {
	CreateOperator(ctx context.Context, op *models.Operator) error
	FindOperatorByEmail(ctx context.Context, email string) (*models.Operator, error)
	CountOperators(ctx context.Context) (int64, error)
}

type AuthHandler struct {
	operators OperatorStore
	config    *config.Config

	// checkEmail rejects e-mails whose domain does not resolve.
	checkEmail func(string) bool
}

func NewAuthHandler(operators OperatorStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		operators:  operators,
		config:     cfg,
		checkEmail: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// RegistrationGate decides who may call Register. Without auth, or with
// ALLOW_REGISTRATION, anyone may. Otherwise only the first operator signs
// up anonymously; later ones need a valid operator token (guard).
func (h *AuthHandler) RegistrationGate(guard gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if guard == nil || h.config.AllowRegistration {
			c.Next()
			return
		}

		n, err := h.operators.CountOperators(c.Request.Context())
		if err != nil {
			httperr.Respond(c, "operator", err)
			c.Abort()
			return
		}
		if n == 0 {
			c.Next()
			return
		}

		guard(c)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.checkEmail(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Não foi possível processar a senha.")
		return
	}

	op := models.Operator{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.operators.CreateOperator(c.Request.Context(), &op); err != nil {
		if httperr.IsBusiness(err, httperr.CodeDuplicate) {
			httperr.Conflict(c, "email_already_exists", "Já existe um operador com este e-mail.")
			return
		}
		httperr.Respond(c, "operator", err)
		return
	}

	token, err := h.generateToken(&op)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Não foi possível gerar o token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"operator": gin.H{
			"id":    op.ID,
			"name":  op.Name,
			"email": op.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	op, err := h.operators.FindOperatorByEmail(c.Request.Context(), email)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Respond(c, "operator", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.generateToken(op)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Não foi possível gerar o token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operator": gin.H{
			"id":    op.ID,
			"name":  op.Name,
			"email": op.Email,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(op *models.Operator) (string, error) {
	claims := jwt.MapClaims{
		"sub":   op.ID,
		"email": op.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
