package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/fadilmartias/ai-resume/internal/dto"
	"github.com/fadilmartias/ai-resume/internal/service"
	"github.com/fadilmartias/ai-resume/internal/usecase"
	"github.com/fadilmartias/ai-resume/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ResumeHandler struct {
	uc       usecase.TailorUsecaseInterface
	validate *validator.Validate
	logger   logrus.FieldLogger
}

func NewResumeHandler(uc usecase.TailorUsecaseInterface, logger logrus.FieldLogger) *ResumeHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ResumeHandler{uc: uc, validate: validate, logger: logger}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/get_ai_resume", h.GetAIResume)
	app.Post("/get_ai_resume", h.GetAIResume)
	app.Get("/healthcheck", h.Healthcheck)
}

// GetAIResume tailors the resume at resume_url to applied_job_desc and returns the
// model's JSON untouched.
func (h *ResumeHandler) GetAIResume(c *fiber.Ctx) error {
	var req dto.TailorRequest
	if body := c.Body(); len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "request body must be a JSON object",
			}, err)
		}
	}

	if err := h.validate.Struct(req); err != nil {
		formErr := h.formError(err)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, formErr)
	}
	req = req.WithDefaults()

	log := h.logger.WithFields(logrus.Fields{
		"request_id": c.Locals("requestid"),
		"resume_url": req.ResumeURL,
	})
	log.Debug("tailoring resume")

	out, err := h.uc.Tailor(c.UserContext(), req.ResumeURL, req.AppliedJobDesc)
	if err != nil {
		log.WithError(err).Error("failed to tailor resume")
		return h.pipelineError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(out)
}

func (h *ResumeHandler) Healthcheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}

func (h *ResumeHandler) formError(err error) *util.FormError {
	fields := map[string]string{}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			fields[fe.Field()] = "must be a valid " + fe.Tag()
		}
	}
	return util.NewFormError("invalid request", fields)
}

func (h *ResumeHandler) pipelineError(c *fiber.Ctx, err error) error {
	var upstreamErr *service.UpstreamError
	var outputErr *usecase.OutputError

	switch {
	case errors.As(err, &upstreamErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: upstreamErr.Service + " service failed",
		}, err)
	case errors.As(err, &outputErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "model returned an invalid resume",
		}, err)
	case errors.Is(err, usecase.ErrMissingCV):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "resume could not be parsed",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate resume",
		}, err)
	}
}
