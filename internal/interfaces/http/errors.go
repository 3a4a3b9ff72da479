package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/domain"
)

// writeError traduce un error de dominio a su status HTTP. Los errores de base de datos se
// registran con el mensaje del driver y al cliente solo le llega un mensaje genérico.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	var de *domain.Error
	errors.As(err, &de)

	field, message := "", err.Error()
	if de != nil {
		field, message = de.Field, de.Message
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Field: field, Message: message})
	case domain.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Field: field, Message: message})
	case domain.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Field: field, Message: message})
	}

	log.Error().Err(errors.Unwrap(err)).
		Str("request_id", requestID(c)).
		Str("path", c.Path()).
		Msg(err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente más tarde"})
}

// ErrorHandler manejador de errores de Fiber para lo que no pasa por writeError
// (rutas inexistentes, panics recuperados, body demasiado grande).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingCompany(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
}
