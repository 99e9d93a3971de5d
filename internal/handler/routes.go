package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hogyzen12/carrot-go/internal/carrot"
)

func CreateRoutes(client *carrot.Client) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	var VaultHandler = NewVaultHandler(client)
	var BalanceHandler = NewBalanceHandler(client)
	var TransactHandler = NewTransactHandler(client)
	var ActivityHandler = NewActivityHandler()

	r.Route("/vault", func(r chi.Router) {
		r.Get("/", VaultHandler.Get)
	})

	r.Route("/balance", func(r chi.Router) {
		r.Get("/{owner}", BalanceHandler.GetCrt)
		r.Get("/{owner}/{mint}", BalanceHandler.GetAsset)
	})

	r.Post("/deposit", TransactHandler.Deposit)
	r.Post("/withdraw", TransactHandler.Withdraw)

	r.Route("/activity", func(r chi.Router) {
		r.Get("/", ActivityHandler.List)
		r.Get("/{signature}", ActivityHandler.GetBySignature)
	})

	return r
}
