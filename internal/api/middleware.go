package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/dailybrew/internal/i18n"
	"github.com/terraincognita07/dailybrew/internal/models"
)

const (
	authCookieName     = "dailybrew_auth"
	languageCookieName = "dailybrew_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return i18n.LangEN
}
