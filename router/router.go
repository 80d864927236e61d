package router

import (
	"database/sql"
	"net/http"

	authHandler "lifehub/internal/auth"
	authService "lifehub/internal/auth/service"
	"lifehub/internal/auth/session"
	recHandler "lifehub/internal/record"
	"lifehub/internal/record/model"
	recRepo "lifehub/internal/record/repository"
	recService "lifehub/internal/record/service"
	"lifehub/middleware"
)

const (
	loginPath         = "/login/"
	tasksPath         = "/tasks/"
	goalsPath         = "/goals/"
	quotesPath        = "/quotes/"
	booksPath         = "/books/"
	resetDonePath     = "/password_reset_done/"
	resetCompletePath = "/password_reset_complete/"
)

// Setup wires repositories, services and handlers onto a ServeMux. All
// record routes and logout sit behind the auth guard; the identity entry
// points do not. The auth service is built by the caller, which also hands
// it to the token purge job.
func Setup(db *sql.DB, sessions *session.Manager, authSvc *authService.AuthService) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(sessions, loginPath)

	// Identity
	accounts := authHandler.NewAuthHandler(authSvc, sessions, authHandler.Config{
		SuccessPath:       tasksPath,
		LoginPath:         loginPath,
		ResetDonePath:     resetDonePath,
		ResetCompletePath: resetCompletePath,
	})

	mux.HandleFunc("GET /login/{$}", accounts.LoginPage)
	mux.HandleFunc("POST /login/{$}", accounts.Login)
	mux.Handle("GET /logout/{$}", auth(http.HandlerFunc(accounts.Logout)))
	mux.Handle("POST /logout/{$}", auth(http.HandlerFunc(accounts.Logout)))
	mux.HandleFunc("GET /register/{$}", accounts.RegisterPage)
	mux.HandleFunc("POST /register/{$}", accounts.Register)
	mux.HandleFunc("GET /password_reset/{$}", accounts.PasswordResetPage)
	mux.HandleFunc("POST /password_reset/{$}", accounts.PasswordReset)
	mux.HandleFunc("GET /password_reset_done/{$}", accounts.PasswordResetDone)
	mux.HandleFunc("GET /password_reset_confirm/{token}/{$}", accounts.PasswordResetConfirmPage)
	mux.HandleFunc("POST /password_reset_confirm/{token}/{$}", accounts.PasswordResetConfirm)
	mux.HandleFunc("GET /password_reset_complete/{$}", accounts.PasswordResetComplete)

	// Records
	tasks := recHandler.NewTaskHandler(
		recService.New[model.Task, *model.Task](recRepo.NewRepository(db, recRepo.TaskSchema())),
		recHandler.Config{ListPath: tasksPath, LoginPath: loginPath})
	goals := recHandler.NewGoalHandler(
		recService.New[model.Goal, *model.Goal](recRepo.NewRepository(db, recRepo.GoalSchema())),
		recHandler.Config{ListPath: goalsPath, LoginPath: loginPath})
	quotes := recHandler.NewQuoteHandler(
		recService.New[model.Quote, *model.Quote](recRepo.NewRepository(db, recRepo.QuoteSchema())),
		recHandler.Config{ListPath: quotesPath, LoginPath: loginPath})
	books := recHandler.NewBookHandler(
		recService.New[model.Book, *model.Book](recRepo.NewRepository(db, recRepo.BookSchema())),
		recHandler.Config{ListPath: booksPath, LoginPath: loginPath})

	// The task list doubles as the home page.
	mux.Handle("GET /{$}", auth(http.HandlerFunc(tasks.List)))

	// GET on the form entry points serves the data the form renders from:
	// a page marker for create, the current record for update and delete.
	mux.Handle("GET /tasks/{$}", auth(http.HandlerFunc(tasks.List)))
	mux.Handle("GET /tasks/{id}/{$}", auth(http.HandlerFunc(tasks.Detail)))
	mux.Handle("GET /task_create/{$}", auth(http.HandlerFunc(tasks.CreatePage)))
	mux.Handle("POST /task_create/{$}", auth(http.HandlerFunc(tasks.Create)))
	mux.Handle("GET /tasks/{id}/update/{$}", auth(http.HandlerFunc(tasks.Detail)))
	mux.Handle("POST /tasks/{id}/update/{$}", auth(http.HandlerFunc(tasks.Update)))
	mux.Handle("GET /tasks/{id}/delete/{$}", auth(http.HandlerFunc(tasks.Detail)))
	mux.Handle("POST /tasks/{id}/delete/{$}", auth(http.HandlerFunc(tasks.Delete)))

	mux.Handle("GET /goals/{$}", auth(http.HandlerFunc(goals.List)))
	mux.Handle("GET /goals/{id}/{$}", auth(http.HandlerFunc(goals.Detail)))
	mux.Handle("GET /goal_create/{$}", auth(http.HandlerFunc(goals.CreatePage)))
	mux.Handle("POST /goal_create/{$}", auth(http.HandlerFunc(goals.Create)))
	mux.Handle("GET /goals/{id}/update/{$}", auth(http.HandlerFunc(goals.Detail)))
	mux.Handle("POST /goals/{id}/update/{$}", auth(http.HandlerFunc(goals.Update)))
	mux.Handle("GET /goals/{id}/delete/{$}", auth(http.HandlerFunc(goals.Detail)))
	mux.Handle("POST /goals/{id}/delete/{$}", auth(http.HandlerFunc(goals.Delete)))

	// Quotes have no standalone detail view, but their update and delete
	// forms still load the record.
	mux.Handle("GET /quotes/{$}", auth(http.HandlerFunc(quotes.List)))
	mux.Handle("GET /quote_create/{$}", auth(http.HandlerFunc(quotes.CreatePage)))
	mux.Handle("POST /quote_create/{$}", auth(http.HandlerFunc(quotes.Create)))
	mux.Handle("GET /quotes/{id}/update/{$}", auth(http.HandlerFunc(quotes.Detail)))
	mux.Handle("POST /quotes/{id}/update/{$}", auth(http.HandlerFunc(quotes.Update)))
	mux.Handle("GET /quotes/{id}/delete/{$}", auth(http.HandlerFunc(quotes.Detail)))
	mux.Handle("POST /quotes/{id}/delete/{$}", auth(http.HandlerFunc(quotes.Delete)))

	mux.Handle("GET /books/{$}", auth(http.HandlerFunc(books.List)))
	mux.Handle("GET /books/{id}/{$}", auth(http.HandlerFunc(books.Detail)))
	mux.Handle("GET /book_create/{$}", auth(http.HandlerFunc(books.CreatePage)))
	mux.Handle("POST /book_create/{$}", auth(http.HandlerFunc(books.Create)))
	mux.Handle("GET /books/{id}/update/{$}", auth(http.HandlerFunc(books.Detail)))
	mux.Handle("POST /books/{id}/update/{$}", auth(http.HandlerFunc(books.Update)))
	mux.Handle("GET /books/{id}/delete/{$}", auth(http.HandlerFunc(books.Detail)))
	mux.Handle("POST /books/{id}/delete/{$}", auth(http.HandlerFunc(books.Delete)))

	return middleware.CORSMiddleware(mux)
}
