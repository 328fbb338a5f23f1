package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fadilmartias/ai-resume/internal/model"
	"github.com/fadilmartias/ai-resume/internal/resume"
	"github.com/fadilmartias/ai-resume/internal/schema"
	"github.com/fadilmartias/ai-resume/internal/service"
	"github.com/fadilmartias/ai-resume/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// OutputError means the completion service answered with something that is not the
// expected JSON document.
type OutputError struct {
	Output string
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("invalid model output: %v", e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// ErrMissingCV is returned when the parsing service response has no cv object.
var ErrMissingCV = errors.New("parse response has no cv object")

type TailorUsecase struct {
	parser         service.CVParserServiceInterface
	completion     service.CompletionServiceInterface
	normalizer     *resume.Normalizer
	logger         logrus.FieldLogger
	validateOutput bool
}

func NewTailorUsecase(parser service.CVParserServiceInterface, completion service.CompletionServiceInterface, normalizer *resume.Normalizer, logger logrus.FieldLogger, validateOutput bool) *TailorUsecase {
	return &TailorUsecase{
		parser:         parser,
		completion:     completion,
		normalizer:     normalizer,
		logger:         logger,
		validateOutput: validateOutput,
	}
}

// Tailor runs the whole pipeline for one request: parse, prune, normalize, compose,
// complete. The model output is returned as-is once it is known to be JSON.
func (uc *TailorUsecase) Tailor(ctx context.Context, resumeURL, jobDesc string) (json.RawMessage, error) {
	log := uc.logger.WithField("resume_url", resumeURL)

	raw, err := uc.parser.Parse(ctx, resumeURL)
	if err != nil {
		return nil, err
	}

	cv, err := DecodeResume(raw)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"work_entries":      len(cv.WorkHistory),
		"education_entries": len(cv.EducationHistory),
	}).Debug("resume parsed")

	if err := uc.normalizer.Normalize(&cv); err != nil {
		log.WithError(err).Warn("could not normalize education dates")
	}

	prompt := resume.ComposePrompt(cv, jobDesc)
	log.WithField("prompt_length", len(prompt)).Debug("prompt composed")

	output, err := uc.completion.Complete(ctx, prompt, resume.SystemPrompt)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(output)) {
		return nil, &OutputError{Output: output, Err: errors.New("response is not valid JSON")}
	}
	if uc.validateOutput {
		if err := schema.Validate(output); err != nil {
			return nil, &OutputError{Output: output, Err: err}
		}
	}

	log.Info("tailored resume generated")
	return json.RawMessage(output), nil
}

// DecodeResume turns a parsing service response into a resume record with null
// fields pruned.
func DecodeResume(raw []byte) (model.ResumeRecord, error) {
	if !gjson.GetBytes(raw, "cv").IsObject() {
		return model.ResumeRecord{}, ErrMissingCV
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.ResumeRecord{}, fmt.Errorf("decode parse response: %w", err)
	}

	pruned, err := json.Marshal(util.RemoveNullValues(doc))
	if err != nil {
		return model.ResumeRecord{}, fmt.Errorf("encode pruned resume: %w", err)
	}

	var parsed model.ParseResponse
	if err := json.Unmarshal(pruned, &parsed); err != nil {
		return model.ResumeRecord{}, fmt.Errorf("decode resume record: %w", err)
	}
	return parsed.CV, nil
}

type TailorUsecaseInterface interface {
	Tailor(ctx context.Context, resumeURL, jobDesc string) (json.RawMessage, error)
}
