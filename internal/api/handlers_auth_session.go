package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/dailybrew/internal/services"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_input")
	}
	credentials.Email = services.NormalizeEmail(credentials.Email)
	if credentials.Email == "" || strings.TrimSpace(credentials.Password) == "" {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	limiterKey := loginLimiterKey(c, credentials.Email)
	if handler.loginLimiter.blocked(limiterKey, handler.now()) {
		return handler.apiError(c, fiber.StatusTooManyRequests, "too_many_attempts")
	}

	user, err := handler.services.Users.Authenticate(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.fail(limiterKey, handler.now())
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	ttl := defaultAuthTokenTTL
	if credentials.RememberMe {
		ttl = rememberAuthTokenTTL
	}
	token, err := handler.buildToken(&user, ttl)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.setAuthCookie(c, token, ttl, credentials.RememberMe)

	return c.JSON(fiber.Map{
		"token": token,
		"user":  newUserResponse(&user),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	return c.JSON(newUserResponse(user))
}
