package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/config"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/apiErrors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

const defaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	LoginUser(email, password string) (string, error)
	GenerateToken(email string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service autentica os operadores declarados na configuração
type Service struct {
	operators map[string]domain.Operator
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	operators := make(map[string]domain.Operator, len(cfg.Operators))
	for _, op := range cfg.Operators {
		op.Email = handleEmail(op.Email)
		operators[op.Email] = op
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		operators: operators,
		secret:    []byte(cfg.Secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	op, ok := s.operators[email]
	if !ok {
		return "", NewOperatorAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, email, "Operador não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", NewOperatorAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, email, "Senha incorreta")
	}

	token, err := s.generateJWT(op)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

// GenerateToken emite um token para um operador configurado sem verificar senha.
// Usado pela linha de comando para chamadas de automação.
func (s *Service) GenerateToken(email string) (string, error) {
	email = handleEmail(email)

	op, ok := s.operators[email]
	if !ok {
		return "", NewOperatorAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, email, "Operador não encontrado")
	}

	return s.generateJWT(op)
}

func (s *Service) generateJWT(op domain.Operator) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := s.now()
	claims := domain.Claims{
		UserEmail:  op.Email,
		UserName:   op.Name,
		UserRoleID: op.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "invalid token")
	}

	if _, known := s.operators[handleEmail(claims.UserEmail)]; !known {
		return nil, NewOperatorAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, claims.UserEmail, "Operador removido da configuração")
	}

	return claims, nil
}
