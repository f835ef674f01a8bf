package http

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/adapters/http/middleware"
	"bookcrossing/internal/bookcrossing/ports/api"
	ports "bookcrossing/internal/bookcrossing/ports/services"
	"bookcrossing/pkg/logger"
)

const (
	coverFormField = "cover"

	LogHandlerAddBook   = "book handler: add"
	LogHandlerTakeBook  = "book handler: take"
	LogHandlerDashboard = "book handler: dashboard"
)

// BookHandler содержит HTTP обработчики каталога и передачи книг.
type BookHandler struct {
	books   api.BookUseCase
	custody api.CustodyUseCase
}

// NewBookHandler создает новый экземпляр обработчика книг.
func NewBookHandler(books api.BookUseCase, custody api.CustodyUseCase) *BookHandler {
	return &BookHandler{books: books, custody: custody}
}

// ListAvailable возвращает доступные книги.
func (h *BookHandler) ListAvailable(ctx fiber.Ctx) error {
	books, err := h.books.ListAvailable(ctx.Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(books)
}

// Get возвращает книгу по ID.
func (h *BookHandler) Get(ctx fiber.Ctx) error {
	book, err := h.books.GetByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(book)
}

// Add выставляет книгу из multipart формы с полями title, author и необязательным файлом cover.
func (h *BookHandler) Add(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerAddBook)

	var upload *ports.CoverUpload
	fileHeader, err := ctx.FormFile(coverFormField)
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			log.Debug(requestCtx, MsgInvalidRequest, zap.Error(openErr))
			return jsonError(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
		}
		defer func(f multipart.File) {
			_ = f.Close()
		}(file)

		upload = &ports.CoverUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  file,
		}
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
	default:
		log.Debug(requestCtx, MsgInvalidRequest, zap.Error(err))
		return jsonError(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	book, err := h.books.Add(requestCtx, middleware.IdentityFrom(ctx), ctx.FormValue("title"), ctx.FormValue("author"), upload)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(book)
}

// Take передает книгу текущему пользователю.
func (h *BookHandler) Take(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerTakeBook)

	book, err := h.custody.Take(requestCtx, middleware.IdentityFrom(ctx), ctx.Params("id"))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(book)
}

// Dashboard возвращает книги, выставленные пользователем и находящиеся у него.
func (h *BookHandler) Dashboard(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDashboard)

	dashboard, err := h.books.Dashboard(requestCtx, middleware.IdentityFrom(ctx))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(dashboard)
}
