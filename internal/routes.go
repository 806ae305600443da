package internal

import (
	"net/http"

	"surveysync/internal/controllers"
	"surveysync/internal/providers"
	"surveysync/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/surveys", http.HandlerFunc(apiController.GetSurveys))
	routers.Get("/transactions", http.HandlerFunc(apiController.GetTransactions))
	routers.Post("/transactions/paid", http.HandlerFunc(apiController.MarkTransactionPaid))
	routers.Post("/update", http.HandlerFunc(apiController.RequestUpdate))
	routers.Post("/foreground", http.HandlerFunc(apiController.Foreground))
	routers.Post("/polling/activate", http.HandlerFunc(apiController.ActivatePolling))
	routers.Post("/polling/deactivate", http.HandlerFunc(apiController.DeactivatePolling))
	routers.Get("/banner", http.HandlerFunc(apiController.GetBanner))
	routers.Post("/banner", http.HandlerFunc(apiController.SetBanner))
	routers.Post("/cache/clear", http.HandlerFunc(apiController.ClearCache))
	routers.Get("/navigate", http.HandlerFunc(apiController.Navigate))
	routers.Post("/content/open", http.HandlerFunc(apiController.OpenContent))
	routers.Post("/content/close", http.HandlerFunc(apiController.CloseContent))
	routers.Post("/screen", http.HandlerFunc(apiController.SetScreen))
	routers.Post("/style", http.HandlerFunc(apiController.SetStyle))
	return routers
}
