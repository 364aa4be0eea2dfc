package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Operator é um usuário autorizado a operar o pipeline pela API
type Operator struct {
	Email        string `mapstructure:"email" json:"email"`
	Name         string `mapstructure:"name" json:"name"`
	PasswordHash string `mapstructure:"password_hash" json:"-"`
	RoleID       int    `mapstructure:"role" json:"role_id"`
}

type Claims struct {
	UserEmail  string
	UserName   string
	UserRoleID int
	jwt.RegisteredClaims
}
