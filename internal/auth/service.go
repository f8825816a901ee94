package auth

import (
	"fmt"
	"strings"

	"github.com/d2inventory/motioncore/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Permission string

const (
	PermOperator   Permission = "operator"
	PermTechnician Permission = "technician"
	PermAdmin      Permission = "admin"
)

type operator struct {
	id           uuid.UUID
	passwordHash string
	role         string
}

// AuthService authenticates operators declared in the config file.
// Accounts are static for the lifetime of the process; a controller on
// the shop floor does not need online user management.
type AuthService struct {
	logger         *zap.Logger
	jwtHandler     *JWTHandler
	passwordHasher *PasswordHasher
	operators      map[string]operator
}

func NewAuthService(cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	a := &AuthService{
		logger:         logger,
		jwtHandler:     NewJWTHandler(cfg.GetJWTSecret(), cfg.AccessTokenTTL),
		passwordHasher: NewPasswordHasher(),
		operators:      make(map[string]operator),
	}

	for _, op := range cfg.Operators {
		name := strings.ToLower(op.Username)
		a.operators[name] = operator{
			id:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
			passwordHash: op.PasswordHash,
			role:         op.Role,
		}
	}

	return a
}

// LoginUser authenticates an operator and returns an access token.
func (a *AuthService) LoginUser(username, password, ipAddress string) (string, error) {
	op, ok := a.operators[strings.ToLower(username)]
	if !ok {
		a.logger.Warn("login failed",
			zap.String("username", username),
			zap.String("ip", ipAddress),
			zap.String("reason", "unknown user"))
		return "", fmt.Errorf("invalid credentials")
	}

	valid, err := a.passwordHasher.VerifyPassword(password, op.passwordHash)
	if err != nil || !valid {
		a.logger.Warn("login failed",
			zap.String("username", username),
			zap.String("ip", ipAddress),
			zap.String("reason", "invalid password"))
		return "", fmt.Errorf("invalid credentials")
	}

	accessToken, err := a.jwtHandler.GenerateAccessToken(op.id, username, op.role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	a.logger.Info("operator logged in",
		zap.String("username", username),
		zap.String("role", op.role))
	return accessToken, nil
}

// ValidateToken validates a JWT access token and returns the granted
// permissions.
func (a *AuthService) ValidateToken(token string) ([]Permission, *JWTClaims, error) {
	claims, err := a.jwtHandler.ValidateAccessToken(token)
	if err != nil {
		return nil, nil, err
	}
	return a.roleToPermissions(claims.Role), claims, nil
}

func (a *AuthService) roleToPermissions(role string) []Permission {
	switch role {
	case "admin":
		return []Permission{PermOperator, PermTechnician, PermAdmin}
	case "technician":
		return []Permission{PermOperator, PermTechnician}
	default:
		return []Permission{PermOperator}
	}
}
