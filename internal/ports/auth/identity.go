package auth

import (
	"context"
	"errors"
	"fmt"
)

// Session es lo que devuelve el proveedor de identidad al registrarse o ingresar.
type Session struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    int64 // segundos
}

// IdentityProvider crea cuentas e inicia sesión con email/contraseña.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
}

// Códigos que reporta el proveedor.
const (
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeEmailNotFound      = "EMAIL_NOT_FOUND"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUserDisabled       = "USER_DISABLED"
	CodeInvalidToken       = "INVALID_ID_TOKEN"
)

var ErrUnauthorized = errors.New("unauthorized")

// Error es un error del proveedor de identidad con mensaje bilingüe (th / en).
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth: %s: %s", e.Code, e.Message)
}

// NewError arma el Error con el mensaje que ve el usuario para ese código.
func NewError(code string) *Error {
	return &Error{Code: code, Message: Message(code)}
}

func Message(code string) string {
	switch code {
	case CodeInvalidEmail:
		return "อีเมลไม่ถูกต้อง / Invalid email."
	case CodeEmailNotFound, CodeInvalidPassword, CodeInvalidCredentials:
		return "อีเมลหรือรหัสผ่านไม่ถูกต้อง / Incorrect email or password."
	case CodeEmailExists:
		return "อีเมลนี้ถูกใช้แล้ว / Email already in use."
	case CodeWeakPassword:
		return "รหัสผ่านอ่อนแอเกินไป (ต้องมีอย่างน้อย 6 ตัวอักษร) / Password is too weak (min 6 characters)."
	case CodeUserDisabled:
		return "บัญชีนี้ถูกระงับ / This account has been disabled."
	default:
		return "เกิดข้อผิดพลาดในการยืนยันตัวตน / Authentication error."
	}
}
