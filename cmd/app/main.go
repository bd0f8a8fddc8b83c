package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/warit-s/user-account-backend/internal/config"
	"github.com/warit-s/user-account-backend/internal/user"
	"github.com/warit-s/user-account-backend/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := user.EnsureSchema(db); err != nil {
		logger.Fatal("create users table", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: web.NewErrorHandler(logger),
	})
	setupCORS(app)
	app.Use(web.RequestLogger(logger))

	app.Get("/", healthCheck(db))

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)
	userHandler.RegisterRoutes(app)

	logger.Info("server listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		panic("database configuration is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// healthCheck answers with the connected database name so deploys can
// verify the pool end to end.
func healthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var name string
		if err := db.QueryRow(`SELECT current_database()`).Scan(&name); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"status":  fiber.StatusOK,
			"message": "API is running",
			"data":    fiber.Map{"database": name},
		})
	}
}
