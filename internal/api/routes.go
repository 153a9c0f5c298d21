package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/lang/:lang", handler.SetLanguage)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	api.Get("/me", handler.AuthRequired, handler.Me)

	drinks := api.Group("/drinks", handler.AuthRequired)
	drinks.Get("", handler.ListDrinks)
	drinks.Post("", handler.CreateDrink)
	drinks.Put("/:id", handler.UpdateDrink)
	drinks.Delete("/:id", handler.DeleteDrink)

	intakes := api.Group("/intakes", handler.AuthRequired)
	intakes.Get("", handler.ListIntakes)
	intakes.Post("", handler.RecordIntake)
	intakes.Delete("/:id", handler.DeleteIntake)

	limit := api.Group("/limit", handler.AuthRequired)
	limit.Get("", handler.GetLimit)
	limit.Post("", handler.SetLimit)
	limit.Get("/history", handler.LimitHistory)

	api.Get("/status", handler.AuthRequired, handler.GetStatus)
	api.Get("/total", handler.AuthRequired, handler.GetTotalSince)

	history := api.Group("/history", handler.AuthRequired)
	history.Get("/weekly", handler.GetWeekly)
	history.Get("/breakdown", handler.GetBreakdown)

	api.Get("/export/csv", handler.AuthRequired, handler.ExportCSV)
	api.Get("/stream", handler.AuthRequired, handler.Stream)

	app.Use(handler.NotFound)
}
