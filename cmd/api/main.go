package main

import (
	"context"
	"os"

	"keepnotes/internal/cache"
	"keepnotes/internal/config"
	"keepnotes/internal/domain/policy"
	"keepnotes/internal/domain/sqlite"
	"keepnotes/internal/domain/sqlite/repository"
	"keepnotes/internal/http/handler"
	authmw "keepnotes/internal/http/middleware"
	"keepnotes/internal/infrastructure/aws/storage"
	"keepnotes/internal/mail"
	"keepnotes/internal/service"
	"keepnotes/internal/service/jobs"
	"keepnotes/internal/token"
	"keepnotes/internal/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/keepnotes/prod/"

func main() {
	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		if err := godotenv.Load(); err != nil {
			panic(err)
		}
	}

	cfg := config.Load()
	if cfg.SecretKey == "" {
		log.Fatal("ENCODE_SECRET_KEY is not set")
	}

	validate := validator.New()
	registerValidators(validate)

	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		panic(err)
	}

	redisClient := cache.NewClient(cfg.RedisAddr, cfg.RedisDB)
	sessions := cache.NewSessionCache(redisClient, cfg.TokenTTL, cfg.ResetTokenTTL)
	noteCache := cache.NewNoteCache(redisClient, cfg.NoteCacheTTL)

	s3Client, err := storage.NewStorageClient(cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		panic(err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	codec := token.NewCodec(cfg.SecretKey, cfg.TokenTTL)

	// Getting repos
	accountRepo := repository.NewAccountRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	// Getting services
	authService := service.NewAuthService(accountRepo, sessions, codec, mailer, validate, cfg.BaseURL, cfg.LogoutFlushAll)
	noteService := service.NewNoteService(noteRepo, labelRepo, accountRepo, noteCache, s3Client, validate, policy.NewNotePolicy())
	labelService := service.NewLabelService(labelRepo, validate)

	// Getting handlers
	authRoutes := handler.NewAuthDefault(authService)
	noteRoutes := handler.NewNoteDefault(noteService)
	labelRoutes := handler.NewLabelDefault(labelService)

	// Reminder sweep runs out-of-band, decoupled from request handling.
	sweep := jobs.NewReminderSweep(noteRepo, accountRepo, mailer, cfg.ReminderInterval)
	go sweep.Start(context.Background())

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("12M"))

	// Open endpoints
	e.POST("/register", authRoutes.Register)
	e.GET("/email-verify", authRoutes.VerifyEmail)
	e.POST("/login", authRoutes.Login)
	e.POST("/request-reset-email", authRoutes.RequestPasswordReset)
	e.POST("/password-reset-complete", authRoutes.CompletePasswordReset)

	// Everything below requires a live session
	auth := e.Group("", authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		Accounts: accountRepo,
		Sessions: sessions,
		Tokens:   codec,
	}))

	auth.GET("/logout", authRoutes.Logout)

	// Notes
	auth.GET("/manage-notes", noteRoutes.GetNotes)
	auth.GET("/manage-notes/:id", noteRoutes.GetNote)
	auth.POST("/manage-notes", noteRoutes.CreateNote)
	auth.PUT("/manage-notes/:id", noteRoutes.UpdateNote)
	auth.PATCH("/manage-notes/:id", noteRoutes.UpdateNote)
	auth.DELETE("/manage-notes/:id", noteRoutes.DeleteNote)
	auth.POST("/manage-notes/:id/image", noteRoutes.AttachImage)
	auth.GET("/pinned-notes", noteRoutes.GetPinnedNotes)
	auth.GET("/archived-notes", noteRoutes.GetArchivedNotes)
	auth.GET("/trashed-notes", noteRoutes.GetTrashedNotes)
	auth.GET("/search-notes", noteRoutes.SearchNotes)

	// Labels
	auth.GET("/manage-label", labelRoutes.GetLabels)
	auth.GET("/manage-label/:id", labelRoutes.GetLabel)
	auth.POST("/manage-label", labelRoutes.CreateLabel)
	auth.PUT("/manage-label/:id", labelRoutes.UpdateLabel)
	auth.PATCH("/manage-label/:id", labelRoutes.UpdateLabel)
	auth.DELETE("/manage-label/:id", labelRoutes.DeleteLabel)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
