package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código estable.
// Las variantes se revisan antes que su categoría base.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// handleError responde {"code","message"}. Los 500 se registran y no exponen el detalle.
func handleError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		l := requestLogger(c)
		l.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pathID lee un id numérico positivo de la ruta.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("%s debe ser un entero positivo", name)
	}
	return id, nil
}

func listParams(c *fiber.Ctx) (dto.ListParams, error) {
	var p dto.ListParams
	if err := c.QueryParser(&p); err != nil {
		return p, domain.Invalid("parámetros de listado inválidos")
	}
	return p, nil
}

// list resuelve los listados paginados del tenant del token.
func list[T any](c *fiber.Ctx, f func(context.Context, int64, dto.ListParams) (*dto.ListResponse[T], error)) error {
	p, err := listParams(c)
	if err != nil {
		return handleError(c, err)
	}
	out, err := f(c.UserContext(), GetCompanyID(c), p)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// byID resuelve lecturas por id dentro del tenant del token.
func byID[T any](c *fiber.Ctx, f func(context.Context, int64, int64) (T, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	out, err := f(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// remove resuelve los DELETE /:id; responde 204.
func remove(c *fiber.Ctx, f func(ctx context.Context, companyID, actorID, id int64) error) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := f(c.UserContext(), GetCompanyID(c), GetUserID(c), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// create resuelve los POST de alta; responde 201.
func create[In, Out any](c *fiber.Ctx, f func(ctx context.Context, companyID, actorID int64, in In) (Out, error)) error {
	var in In
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := f(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// update resuelve los PUT/PATCH sobre /:id.
func update[In, Out any](c *fiber.Ctx, f func(ctx context.Context, companyID, actorID, id int64, in In) (Out, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var in In
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := f(c.UserContext(), GetCompanyID(c), GetUserID(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// stats resuelve los GET /stats del tenant.
func stats[T any](c *fiber.Ctx, f func(context.Context, int64) (T, error)) error {
	out, err := f(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// updateStatus resuelve los PATCH /:id/status de habitaciones, mesas y órdenes.
func updateStatus[Out any](c *fiber.Ctx, f func(ctx context.Context, companyID, actorID, id int64, status string) (Out, error)) error {
	return update(c, func(ctx context.Context, companyID, actorID, id int64, in dto.UpdateStatusRequest) (Out, error) {
		return f(ctx, companyID, actorID, id, in.Status)
	})
}
