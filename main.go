package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	cache "sekolahku_backend/internals/helpers/cache"
	"sekolahku_backend/internals/middlewares"
	"sekolahku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	cache.Init(configs.RedisAddr, configs.RedisPass, configs.RedisDB)

	app := fiber.New(fiber.Config{
		AppName:     "Sekolahku Backend",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		// error dari handler/middleware dibungkus ke envelope standar
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"
			if fe, ok := err.(*fiber.Error); ok {
				code, msg = fe.Code, fe.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": msg,
			})
		},
	})

	app.Use(requestid.New())
	middlewares.SetupMiddlewares(app)
	app.Use(etag.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))

	route.SetupRoutes(app, database.DB)

	// graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutdown signal diterima, menutup server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown err: %v", err)
		}
	}()

	port := configs.GetEnvOr("PORT", "3000")
	log.Printf("🚀 Server listen di :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server berhenti: %v", err)
	}
}
