package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type RegisterRequest struct {
	Nombre       string     `json:"nombre" binding:"required"`
	Apellidos    string     `json:"apellidos"`
	Username     string     `json:"username" binding:"required"`
	Email        string     `json:"email"`
	Password     string     `json:"password" binding:"required"`
	TelefonoE164 string     `json:"telefono_e164"`
	MunicipioID  *uuid.UUID `json:"municipio_id"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	PasswordActual string `json:"password_actual" binding:"required"`
	PasswordNueva  string `json:"password_nueva" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondBadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	result, err := h.authService.Register(service.RegisterInput{
		Nombre:       req.Nombre,
		Apellidos:    req.Apellidos,
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		TelefonoE164: req.TelefonoE164,
		MunicipioID:  req.MunicipioID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Log.Info("User registered",
		zap.String("user_id", result.User.ID.String()),
		zap.String("username", result.User.Username),
		zap.String("ip", c.ClientIP()),
	)
	respond(c, http.StatusCreated, "Usuario registrado exitosamente", result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Usuario y contraseña son requeridos")
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		logger.Log.Warn("Login failed",
			zap.String("username", req.Username),
			zap.String("ip", c.ClientIP()),
		)
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Inicio de sesión exitoso", result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "refreshToken es requerido")
		return
	}

	token, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"token": token})
}

func (h *AuthHandler) Perfil(c *gin.Context) {
	actor := middleware.GetActor(c)

	usuario, err := h.authService.GetProfile(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", usuario)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Contraseña actual y nueva son requeridas")
		return
	}

	actor := middleware.GetActor(c)
	if err := h.authService.ChangePassword(actor.ID, req.PasswordActual, req.PasswordNueva); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Contraseña actualizada exitosamente", nil)
}

func (h *AuthHandler) UsernameDisponible(c *gin.Context) {
	username := c.Param("username")

	available, err := h.authService.IsUsernameAvailable(username)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"username":   username,
		"disponible": available,
	})
}
