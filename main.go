package main

import (
	"context"
	"iter"
	"net/http"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appConfig "promptsmith/config"
	"promptsmith/gemini"
	"promptsmith/handlers"
	"promptsmith/models"
	"promptsmith/pages"
	"promptsmith/sentry"
	"promptsmith/session"
	"promptsmith/store"
)

// geminiBackend adapts the gemini client to the session's Backend interface.
type geminiBackend struct {
	client *gemini.Client
}

func (b geminiBackend) GenerateStream(ctx context.Context, system, prompt string) iter.Seq2[string, error] {
	return b.client.GenerateStream(ctx, system, prompt)
}

func (b geminiBackend) StartChat(ctx context.Context, system string, history []models.ChatMessage) (session.ChatSession, error) {
	return b.client.StartChat(ctx, system, history)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	appConfig.NewConfig()

	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if level, err := log.ParseLevel(appConfig.Config.Options.LogLevel); err == nil {
		log.SetLevel(level)
	}

	sentry.Init()

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	st, err := store.New(appConfig.Config.Options.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	var backend session.Backend
	client, err := gemini.New(ctx)
	if err != nil {
		// Missing credential is handled inside gemini.New; an error here
		// means construction itself failed. Degrade, don't crash.
		log.Errorf("failed to construct gemini client, AI features disabled: %v", err)
		sentry.ReportError(err)
	} else if client != nil {
		backend = geminiBackend{client: client}
	}

	sess := session.New(st, backend)

	router := gin.Default()
	router.Use(sentry.GetSentryGin())
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.Index))
	})
	handlers.NewManager(sess).Register(router)

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
