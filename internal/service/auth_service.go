package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/utils"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	usuarioRepo   *repository.UsuarioRepository
	jwtSecret     string
	jwtExpiry     time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(usuarioRepo *repository.UsuarioRepository, jwtSecret string, jwtExpiry, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		usuarioRepo:   usuarioRepo,
		jwtSecret:     jwtSecret,
		jwtExpiry:     jwtExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// AuthResult bundles the user with freshly issued tokens.
type AuthResult struct {
	User         *models.Usuario `json:"user"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
}

type RegisterInput struct {
	Nombre       string
	Apellidos    string
	Username     string
	Email        string
	Password     string
	TelefonoE164 string
	MunicipioID  *uuid.UUID
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	start := time.Now()

	if err := validateRegisterInput(input); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := s.usuarioRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("El nombre de usuario ya está en uso")
	}

	var email *string
	if input.Email != "" {
		existingEmail, err := s.usuarioRepo.GetByEmail(input.Email)
		if err != nil {
			return nil, err
		}
		if existingEmail != nil {
			return nil, apperror.Conflict("El email ya está registrado")
		}
		normalized := strings.ToLower(input.Email)
		email = &normalized
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	usuario := &models.Usuario{
		ID:           uuid.New(),
		Nombre:       input.Nombre,
		Apellidos:    input.Apellidos,
		Username:     strings.ToLower(input.Username),
		Email:        email,
		PasswordHash: passwordHash,
		Rol:          models.RolTrabajador,
		TelefonoE164: input.TelefonoE164,
		MunicipioID:  input.MunicipioID,
	}
	if err := s.usuarioRepo.Create(usuario); err != nil {
		logger.Log.Error("Failed to create usuario",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := s.issueTokens(usuario)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Usuario registered",
		zap.String("user_id", usuario.ID.String()),
		zap.String("username", usuario.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return result, nil
}

// Login authenticates by username, case-insensitively. Bad credentials are
// always the same 401, never revealing which part was wrong.
func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	usuario, err := s.usuarioRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		logger.Log.Warn("Login failed: usuario not found", zap.String("username", username))
		return nil, apperror.Unauthorized("Credenciales incorrectas")
	}

	valid, err := utils.VerifyPassword(password, usuario.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password", zap.Error(err))
		return nil, err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("user_id", usuario.ID.String()),
		)
		return nil, apperror.Unauthorized("Credenciales incorrectas")
	}

	result, err := s.issueTokens(usuario)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Usuario logged in",
		zap.String("user_id", usuario.ID.String()),
		zap.String("username", usuario.Username),
	)

	return result, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", apperror.Unauthorized("Refresh token inválido")
	}

	usuario, err := s.usuarioRepo.GetByID(claims.UserID)
	if err != nil {
		return "", err
	}
	if usuario == nil {
		return "", apperror.Unauthorized("Usuario no encontrado")
	}

	return utils.GenerateToken(usuario, s.jwtSecret, s.jwtExpiry)
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByIDWithProfile(userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, apperror.NotFound("Usuario no encontrado")
	}
	return usuario, nil
}

func (s *AuthService) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	usuario, err := s.usuarioRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if usuario == nil {
		return apperror.NotFound("Usuario no encontrado")
	}

	valid, err := utils.VerifyPassword(currentPassword, usuario.PasswordHash)
	if err != nil {
		return err
	}
	if !valid {
		return apperror.Unauthorized("Contraseña actual incorrecta")
	}

	if len(newPassword) < 8 {
		return apperror.Validation("la contraseña debe tener al menos 8 caracteres")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	usuario.PasswordHash = hash
	if err := s.usuarioRepo.Update(usuario); err != nil {
		return err
	}

	logger.Log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// IsUsernameAvailable checks case-insensitively.
func (s *AuthService) IsUsernameAvailable(username string) (bool, error) {
	usuario, err := s.usuarioRepo.GetByUsername(username)
	if err != nil {
		return false, err
	}
	return usuario == nil, nil
}

func (s *AuthService) issueTokens(usuario *models.Usuario) (*AuthResult, error) {
	token, err := utils.GenerateToken(usuario, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", usuario.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken(usuario.ID, s.jwtSecret, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         usuario,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func validateRegisterInput(input RegisterInput) error {
	var problems []string

	if strings.TrimSpace(input.Nombre) == "" {
		problems = append(problems, "el nombre es obligatorio")
	}
	if len(input.Username) < 3 {
		problems = append(problems, "el nombre de usuario debe tener al menos 3 caracteres")
	}
	if len(input.Username) > 50 {
		problems = append(problems, "el nombre de usuario debe tener como máximo 50 caracteres")
	}
	if input.Email != "" && !emailRegex.MatchString(input.Email) {
		problems = append(problems, "formato de email inválido")
	}
	if len(input.Password) < 8 {
		problems = append(problems, "la contraseña debe tener al menos 8 caracteres")
	}
	if len(input.Password) > 128 {
		problems = append(problems, "la contraseña es demasiado larga")
	}

	if len(problems) > 0 {
		return apperror.Validation(strings.Join(problems, ", "))
	}
	return nil
}
