package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON, app.identify)
	ownerMiddleware := standardMiddleware.Append(app.requireIdentity)
	streamMiddleware := alice.New(app.recoverPanic, app.logRequest)

	mux := pat.New()

	mux.Get("/healthz", standardMiddleware.ThenFunc(app.healthz))

	// Spaces. Fixed segments go before /api/Space/:id.
	mux.Get("/api/Space/GetSpaces", standardMiddleware.ThenFunc(app.spaceHandler.GetSpaces))
	mux.Get("/api/Space/Browse", standardMiddleware.ThenFunc(app.spaceHandler.Browse))
	mux.Get("/api/Space/Owner/:userId", standardMiddleware.ThenFunc(app.spaceHandler.GetSpacesByOwner))
	mux.Get("/api/Space/:id/Images", standardMiddleware.ThenFunc(app.spaceHandler.GetImages))
	mux.Post("/api/Space/:id/Images", ownerMiddleware.ThenFunc(app.spaceHandler.UploadImages))
	mux.Get("/api/Space/:id", standardMiddleware.ThenFunc(app.spaceHandler.GetSpaceByID))
	mux.Put("/api/Space/:id", ownerMiddleware.ThenFunc(app.spaceHandler.UpdateSpace))
	mux.Del("/api/Space/:id", ownerMiddleware.ThenFunc(app.spaceHandler.DeleteSpace))
	mux.Get("/api/Space", standardMiddleware.ThenFunc(app.spaceHandler.GetSpaces))
	mux.Post("/api/Space", ownerMiddleware.ThenFunc(app.spaceHandler.CreateSpace))

	// Notifications
	mux.Get("/api/Notification/Notify", standardMiddleware.ThenFunc(app.notificationHandler.GetNotify))
	mux.Post("/api/Notification/Notify", standardMiddleware.ThenFunc(app.notificationHandler.SetNotify))
	mux.Del("/api/Notification/Notify", standardMiddleware.ThenFunc(app.notificationHandler.RemoveNotify))
	mux.Post("/api/Notification/UpdateAvailability", ownerMiddleware.ThenFunc(app.notificationHandler.UpdateAvailability))

	// Rentals
	mux.Get("/api/Rental/GetRentals", standardMiddleware.ThenFunc(app.rentalHandler.GetRentals))
	mux.Post("/api/Rental", standardMiddleware.ThenFunc(app.rentalHandler.CreateRental))
	mux.Put("/api/Rental/ApproveRental/:id", ownerMiddleware.ThenFunc(app.rentalHandler.ApproveRental))
	mux.Put("/api/Rental/RejectRental/:id", ownerMiddleware.ThenFunc(app.rentalHandler.RejectRental))
	mux.Del("/api/Rental/:id", ownerMiddleware.ThenFunc(app.rentalHandler.DeleteRental))

	// Availability stream
	mux.Get("/ws/spaces/:spaceId", streamMiddleware.ThenFunc(app.hub.ServeSpace))

	return mux
}
