package server

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"ratil/internal/middleware"
	"ratil/internal/models"
	"ratil/internal/storage"
	"ratil/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// StatusResponse is the body returned by delete and password endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func success(c *fiber.Ctx, message string) error {
	return c.JSON(StatusResponse{Status: "success", Message: message})
}

// respondError writes err with the status its code maps to. Server-side
// failures are logged and their causes kept out of the body.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		var appErr *models.AppError
		if !errors.As(err, &appErr) {
			err = models.NewInternalError(err)
		}
	}
	return models.RespondWithError(c, status, err)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "subcategoryId" -> "Invalid subcategory ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "itemId" -> "item ID", "subcategoryId" -> "subcategory ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// parseBody decodes the request body into req and validates it. On failure
// the 400 response is already written and errResponseWritten is returned.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	if err := validation.Struct(req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, err)
		return errResponseWritten
	}
	return nil
}

// optionalFormValue returns a pointer to a submitted form field, or nil when
// the field was not sent at all. An empty value is still a value.
func optionalFormValue(c *fiber.Ctx, key string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if values, ok := form.Value[key]; ok && len(values) > 0 {
			v := values[0]
			return &v
		}
		return nil
	}

	args := c.Request().PostArgs()
	if args.Has(key) {
		v := string(args.Peek(key))
		return &v
	}
	return nil
}

// optionalFormUint parses an optional numeric form field. A blank value
// counts as absent.
func optionalFormUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := optionalFormValue(c, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(*raw), 10, 64)
	if err != nil || n == 0 {
		return nil, models.NewValidationError("Invalid " + key)
	}
	v := uint(n)
	return &v, nil
}

// formFile opens the named multipart file. It returns a nil file when none
// was sent. The caller must invoke the returned close func.
func formFile(c *fiber.Ctx, key string) (*storage.File, func(), error) {
	noop := func() {}

	header, err := c.FormFile(key)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, noop, nil
		}
		return nil, noop, models.NewValidationError("Unable to read uploaded file")
	}
	if header == nil || (header.Filename == "" && header.Size == 0) {
		return nil, noop, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, noop, models.NewValidationError("Unable to read uploaded file")
	}

	file := &storage.File{
		Reader:      src,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	return file, func() { _ = src.Close() }, nil
}
