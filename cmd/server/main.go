package main

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/fadilmartias/ai-resume/internal/config"
	"github.com/fadilmartias/ai-resume/internal/domain/fiber/handler"
	"github.com/fadilmartias/ai-resume/internal/middleware"
	"github.com/fadilmartias/ai-resume/internal/resume"
	"github.com/fadilmartias/ai-resume/internal/schema"
	"github.com/fadilmartias/ai-resume/internal/service"
	"github.com/fadilmartias/ai-resume/internal/usecase"
	"github.com/fadilmartias/ai-resume/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()
	appConfig, log := bootstrap()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, 1*time.Minute, "/healthcheck"))

	if _, err := schema.Compile(); err != nil {
		log.WithError(err).Fatal("output schema does not compile")
	}

	client := resty.New().SetTimeout(appConfig.HTTPClientTimeout)

	completion, err := newCompletionService(ctx, appConfig.LLMProvider, client)
	if err != nil {
		log.WithError(err).Fatal("could not create completion service")
	}

	uc := usecase.NewTailorUsecase(
		service.NewCVParserService(client),
		completion,
		resume.NewNormalizer(log),
		log,
		appConfig.OutputValidation,
	)
	handler.NewResumeHandler(uc, log).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.WithField("goroutines", runtime.NumGoroutine()).Debug("runtime stats")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":     appConfig.Port,
		"provider": appConfig.LLMProvider,
	}).Info("Server running")
	if err := app.Listen(appConfig.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// bootstrap loads the .env files, then the app config and the logger. Both are
// frozen on first use.
func bootstrap(envFiles ...string) (*config.AppConfig, *logrus.Logger) {
	envErr := godotenv.Load(envFiles...)

	appConfig := config.LoadAppConfig()
	log := util.GetLogger()
	if envErr != nil {
		log.WithError(envErr).Warn("Could not load .env file")
	}
	return appConfig, log
}

func newCompletionService(ctx context.Context, provider string, client *resty.Client) (service.CompletionServiceInterface, error) {
	switch provider {
	case "gemini":
		return service.NewGeminiService(ctx)
	case "openai", "":
		return service.NewOpenAIService(client), nil
	default:
		return nil, errors.New("unknown LLM_PROVIDER " + provider)
	}
}
