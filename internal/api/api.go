// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"fmt"
	"net/http"

	_ "github.com/foodgram-app/backend/docs"
	"github.com/foodgram-app/backend/internal/api/middleware"
	"github.com/foodgram-app/backend/internal/api/routes/admin"
	"github.com/foodgram-app/backend/internal/api/routes/auth"
	"github.com/foodgram-app/backend/internal/api/routes/ingredients"
	"github.com/foodgram-app/backend/internal/api/routes/links"
	"github.com/foodgram-app/backend/internal/api/routes/ping"
	"github.com/foodgram-app/backend/internal/api/routes/recipes"
	"github.com/foodgram-app/backend/internal/api/routes/tags"
	"github.com/foodgram-app/backend/internal/api/routes/users"
	"github.com/foodgram-app/backend/internal/env"
	"github.com/foodgram-app/backend/internal/role"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	serverPort = 8080
)

func addDocs(r *chi.Mux, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router *chi.Mux) {
	// Short-link redirects live outside the /api prefix so shared URLs
	// stay short.
	router.Get("/s/{token}", links.HandleRedirect)

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Post("/auth/login", auth.HandleLogin)
		r.Post("/auth/logout", auth.HandleLogout)
		r.Post("/auth/refresh", auth.HandleRefreshSession)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleCreateUser)
			r.Get("/{userID}", users.HandleGetUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthorizeRequest(role.RoleUser))

				r.Get("/me", users.HandleGetMe)
				r.Post("/set_password", users.HandleSetPassword)
				r.Get("/subscriptions", users.HandleListSubscriptions)
				r.Post("/{userID}/subscribe", users.HandleSubscribe)
				r.Delete("/{userID}/subscribe", users.HandleUnsubscribe)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleListTags)
			r.Get("/{tagID}", tags.HandleGetTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleListIngredients)
			r.Get("/{ingredientID}", ingredients.HandleGetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleListRecipes)
			r.Get("/{recipeID}", recipes.HandleGetRecipe)
			r.Get("/{recipeID}/get-link", recipes.HandleGetLink)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthorizeRequest(role.RoleUser))

				r.Post("/", recipes.HandleCreateRecipe)
				r.Patch("/{recipeID}", recipes.HandleUpdateRecipe)
				r.Delete("/{recipeID}", recipes.HandleDeleteRecipe)
				r.Post("/{recipeID}/favorite", recipes.HandleFavorite)
				r.Delete("/{recipeID}/favorite", recipes.HandleUnfavorite)
				r.Get("/shopping_cart", recipes.HandleListCart)
				r.Post("/{recipeID}/shopping_cart", recipes.HandleAddToCart)
				r.Delete("/{recipeID}/shopping_cart", recipes.HandleRemoveFromCart)
				r.Get("/download_shopping_cart", recipes.HandleDownloadShoppingCart)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthorizeRequest(role.RoleUser))

			r.Post("/links", links.HandleShorten)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthorizeRequest(role.RoleAdmin))

			r.Post("/users", admin.HandleCreateUser)
			r.Post("/tags", admin.HandleCreateTag)
			r.Patch("/tags/{tagID}", admin.HandleUpdateTag)
			r.Delete("/tags/{tagID}", admin.HandleDeleteTag)
			r.Post("/ingredients", admin.HandleCreateIngredient)
			r.Patch("/ingredients/{ingredientID}", admin.HandleUpdateIngredient)
			r.Delete("/ingredients/{ingredientID}", admin.HandleDeleteIngredient)
		})
	})
}

// Start godoc
//
//	@title						Foodgram API
//	@version					1.0
//	@description				API Server for the Foodgram recipe platform.
//
//	@securityDefinitions.apikey	AccessTokenCookie
//	@in							header
//	@name						Cookie
//
//	@host						localhost:8080
//	@BasePath					/api
func Start(env *env.Env) error {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	addRoutes(router)
	addDocs(router, fmt.Sprintf("0.0.0.0:%d", serverPort))
	http.Handle("/", router)

	env.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0:%d", serverPort))
	env.Logger.Info(fmt.Sprintf("Swagger UI available at http://0.0.0.0:%d/api/swagger/index.html", serverPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", serverPort), nil)
}
