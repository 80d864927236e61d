package handler

import (
	"net/http"

	"lifehub/internal/record/model"
	"lifehub/internal/record/service"
	"lifehub/pkg/validate"
)

// The four kind bindings. Each declares how its forms map onto the record;
// fields a form does not carry are simply never written, which is how a
// book submission claiming complete=true still starts unread.

func NewTaskHandler(svc *service.Service[model.Task, *model.Task], cfg Config) *Handler[model.Task, *model.Task] {
	h := &Handler[model.Task, *model.Task]{Service: svc, Config: cfg}
	h.decodeCreate = func(r *http.Request) (model.Task, any, error) {
		var f model.TaskForm
		if err := decodeBody(r, &f); err != nil {
			return model.Task{}, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return model.Task{}, &f, err
		}
		return model.Task{Title: f.Title, Description: f.Description, Complete: f.Complete}, &f, nil
	}
	h.decodeUpdate = func(r *http.Request) (func(*model.Task), any, error) {
		var f model.TaskForm
		if err := decodeBody(r, &f); err != nil {
			return nil, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return nil, &f, err
		}
		return func(t *model.Task) {
			t.Title, t.Description, t.Complete = f.Title, f.Description, f.Complete
		}, &f, nil
	}
	return h
}

func NewGoalHandler(svc *service.Service[model.Goal, *model.Goal], cfg Config) *Handler[model.Goal, *model.Goal] {
	h := &Handler[model.Goal, *model.Goal]{Service: svc, Config: cfg}
	h.decodeCreate = func(r *http.Request) (model.Goal, any, error) {
		var f model.GoalForm
		if err := decodeBody(r, &f); err != nil {
			return model.Goal{}, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return model.Goal{}, &f, err
		}
		return model.Goal{Title: f.Title, Description: f.Description, Complete: f.Complete}, &f, nil
	}
	h.decodeUpdate = func(r *http.Request) (func(*model.Goal), any, error) {
		var f model.GoalForm
		if err := decodeBody(r, &f); err != nil {
			return nil, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return nil, &f, err
		}
		return func(g *model.Goal) {
			g.Title, g.Description, g.Complete = f.Title, f.Description, f.Complete
		}, &f, nil
	}
	return h
}

func NewQuoteHandler(svc *service.Service[model.Quote, *model.Quote], cfg Config) *Handler[model.Quote, *model.Quote] {
	h := &Handler[model.Quote, *model.Quote]{Service: svc, Config: cfg}
	h.decodeCreate = func(r *http.Request) (model.Quote, any, error) {
		var f model.QuoteForm
		if err := decodeBody(r, &f); err != nil {
			return model.Quote{}, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return model.Quote{}, &f, err
		}
		return model.Quote{Author: f.Author, Quote: f.Quote, Category: f.Category}, &f, nil
	}
	h.decodeUpdate = func(r *http.Request) (func(*model.Quote), any, error) {
		var f model.QuoteForm
		if err := decodeBody(r, &f); err != nil {
			return nil, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return nil, &f, err
		}
		return func(q *model.Quote) {
			q.Author, q.Quote, q.Category = f.Author, f.Quote, f.Category
		}, &f, nil
	}
	return h
}

func NewBookHandler(svc *service.Service[model.Book, *model.Book], cfg Config) *Handler[model.Book, *model.Book] {
	h := &Handler[model.Book, *model.Book]{Service: svc, Config: cfg}
	h.decodeCreate = func(r *http.Request) (model.Book, any, error) {
		var f model.BookCreateForm
		if err := decodeBody(r, &f); err != nil {
			return model.Book{}, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return model.Book{}, &f, err
		}
		// No Complete on the create form: a new book is always unread.
		return model.Book{Author: f.Author, Title: f.Title, Genre: f.Genre}, &f, nil
	}
	h.decodeUpdate = func(r *http.Request) (func(*model.Book), any, error) {
		var f model.BookUpdateForm
		if err := decodeBody(r, &f); err != nil {
			return nil, &f, err
		}
		if err := validate.Struct(&f); err != nil {
			return nil, &f, err
		}
		return func(b *model.Book) {
			b.Author, b.Title, b.Genre, b.Complete = f.Author, f.Title, f.Genre, f.Complete
		}, &f, nil
	}
	return h
}
