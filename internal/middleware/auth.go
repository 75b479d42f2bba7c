package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vidverse/vidverse_backend/internal/dto"
)

// AuthMiddleware validates the access token and attaches the caller's user
// ID to the request context. The token is taken from the Authorization
// bearer header, falling back to the access-token cookie so browser clients
// work without custom headers.
func AuthMiddleware(jwtSecret string, accessCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(accessCookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			logger.Warn("Access token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			msg := "Invalid access token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Access token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, msg))
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid access token claims")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Invalid access token"))
			return
		}

		userID := claims.Subject
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
