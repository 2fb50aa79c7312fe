package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"quiz-builder/internal/draft"
	"quiz-builder/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

func newEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("questionCount", questionCount)
	engine.AddFunc("formatDate", formatDate)
	engine.AddFunc("rfc3339", rfc3339)
	return engine
}

// NewApp builds the web client. Sessions live as long as their draft.
func NewApp(api QuizAPI, drafts *draft.Registry, sessionTTL time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        newEngine(),
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(sessionMiddleware(sessionTTL))

	NewHandler(api, drafts).Register(app)
	return app
}
