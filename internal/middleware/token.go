package middleware

import (
	"LeadReceptionist/internal/entity"
	"LeadReceptionist/pkg/handlerUtil"
	jwtPkg "LeadReceptionist/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret   = "JWT_ACCESS_TOKEN_SECRET"
	unauthorizedMessage = "Unauthorized, access token invalid or expired"
)

// NewTokenMiddleware guards operator routes with an HS256 bearer token.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(m.log)
	unauthorized := func(ctx *fiber.Ctx) error {
		return errHandler.HandleUnauthorized(ctx, m.GetRequestID(ctx), unauthorizedMessage)
	}

	authHeader := ctx.Get("Authorization")

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":      ctx.Path(),
			"client_ip": ctx.IP(),
		}).Warn("Missing or malformed Authorization header")
		return unauthorized(ctx)
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(ctx)
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	if id == "" {
		m.log.Warn("Token claims are missing the operator id")
		return unauthorized(ctx)
	}

	ctx.Locals("operator", entity.OperatorLoginData{
		ID:       id,
		Email:    email,
		Username: username,
	})

	return ctx.Next()
}
