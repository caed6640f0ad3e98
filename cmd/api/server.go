package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	mw "kantong/internal/api/middlewares"
	"kantong/internal/api/routers"
	"kantong/internal/repositories"
	"kantong/internal/repositories/sqlconnect"
	"kantong/internal/services"
	"kantong/pkg/cron"
	"kantong/pkg/utils"
)

func main() {
	// Missing .env is fine in containers where config comes from the
	// environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	if err := sqlconnect.ConnectDb(); err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if err := sqlconnect.RunMigrations(); err != nil {
		utils.Logger.Fatal("DB migration failed: ", err)
	}

	db := sqlconnect.DB
	store := repositories.NewStore(db)
	ledger := services.NewLedger(store, utils.Logger)
	analytics := services.NewAnalytics(db)

	c := cron.StartCronJobs(db)
	defer c.Stop()

	router := routers.MainRouter(db, ledger, analytics)
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware,
		"/auth/register", "/auth/login", "/auth/refresh")

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
	}

	fmt.Println("Server is running on port", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
