package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/corregedoria/procedimentos-api/config"
	"github.com/corregedoria/procedimentos-api/databases"
	"github.com/corregedoria/procedimentos-api/models"
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = 24 * time.Hour

// MiddlewareDB is a struct that holds the database
type MiddlewareDB struct {
	DB     databases.UsuarioDatabase
	Secret []byte
}

// Claims is the payload of the issued tokens
type Claims struct {
	Email  string `json:"email"`
	Perfil string `json:"perfil,omitempty"`
	jwt.RegisteredClaims
}

var authenticator auth.Authenticator
var cache store.Cache

// Middleware adds some basic header authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Warnw("unauthorized", "url", r.URL.String())
			config.ErrorStatus("não autorizado", http.StatusUnauthorized, w, nil)
			return
		}
		zap.S().Debugw("usuário autenticado", "usuario", user.UserName(), "id", user.ID())
		next.ServeHTTP(w, r)
	})
}

// CreateToken issues a signed token for the user authenticated by basic auth
// and registers it with the bearer strategy
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	email, _, ok := r.BasicAuth()
	if !ok {
		config.ErrorStatus("basic auth failed", http.StatusUnauthorized, w, nil)
		return
	}

	ctx, cancel := databases.WithQueryTimeout(r.Context())
	defer cancel()
	usuario, err := m.DB.FindOne(ctx, bson.M{"email": email, "ativo": true})
	if err != nil {
		config.ErrorStatus("failed to get user by email", http.StatusUnauthorized, w, err)
		return
	}

	token, err := m.signToken(*usuario, time.Now())
	if err != nil {
		config.ErrorStatus("token generation failed", http.StatusInternalServerError, w, err)
		return
	}
	authUser := auth.NewDefaultUser(usuario.Email, usuario.ID, nil, map[string][]string{"perfil": {usuario.Perfil}})
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	if err := auth.Append(tokenStrategy, token, authUser, r); err != nil {
		config.ErrorStatus("failed to register token", http.StatusInternalServerError, w, err)
		return
	}

	responseBody, err := json.Marshal(models.RespostaToken{
		Resposta: models.Resposta{Sucesso: true},
		Token:    token,
		ID:       usuario.ID,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(responseBody)
}

func (m MiddlewareDB) signToken(usuario models.Usuario, now time.Time) (string, error) {
	if len(m.Secret) == 0 {
		return "", errors.New("JWT_SECRET not configured")
	}
	claims := Claims{
		Email:  usuario.Email,
		Perfil: usuario.Perfil,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// ParseToken validates a token issued by CreateToken
func ParseToken(secret []byte, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareDB) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), TokenTTL)
	basicStrategy := basic.New(m.ValidateUser, cache)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateUser validates a user
func (m MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	usernameHash := sha256.Sum256([]byte(email))

	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()
	usuario, err := m.DB.FindOne(ctx, bson.M{"email": email, "ativo": true})
	if err != nil {
		return nil, fmt.Errorf("no matching email found")
	}

	expectedUsernameHash := sha256.Sum256([]byte(usuario.Email))
	usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], expectedUsernameHash[:]) == 1

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(password)); err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}

	if usernameMatch {
		return auth.NewDefaultUser(usuario.Email, usuario.ID, nil, nil), nil
	}
	return nil, fmt.Errorf("invalid credentials")
}

// RevokeToken revokes a token
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if reqToken == "" {
		config.ErrorStatus("token ausente", http.StatusBadRequest, w, nil)
		return
	}

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	if err := auth.Revoke(tokenStrategy, reqToken, r); err != nil {
		config.ErrorStatus("failed to revoke token", http.StatusInternalServerError, w, err)
		return
	}
	b, _ := json.Marshal(models.Resposta{Sucesso: true, Mensagem: "token revogado"})
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
