package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/ai-resume/internal/resume"
	"github.com/fadilmartias/ai-resume/internal/schema"
	"github.com/fadilmartias/ai-resume/internal/service"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeParser) Parse(_ context.Context, resumeURL string) ([]byte, error) {
	f.urls = append(f.urls, resumeURL)
	return f.body, f.err
}

type fakeCompletion struct {
	output  string
	err     error
	prompts []string
	systems []string
}

func (f *fakeCompletion) Complete(_ context.Context, userPrompt, systemPrompt string) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	f.systems = append(f.systems, systemPrompt)
	return f.output, f.err
}

const modelOutput = `{"cv":{"languages":[],"city":"Dubai","country":"UAE","educationHistory":[],"workHistory":[],"projects":[],"linkedIn":null,"website":null,"skills":[],"bio":null,"email":"","phone":"","certificates":[]}}`

func newTestUsecase(parser *fakeParser, completion *fakeCompletion, validate bool) (*TailorUsecase, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	normalizer := resume.NewNormalizer(logger)
	normalizer.Now = func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) }
	return NewTailorUsecase(parser, completion, normalizer, logger, validate), hook
}

func TestTailor_EndToEnd(t *testing.T) {
	parser := &fakeParser{body: []byte(`{"cv":{"city":"Dubai","country":"UAE","bio":null,
		"workHistory":[{"title":"Engineer","companyName":"Acme","startAt":"2019-06-01","endAt":null}]}}`)}
	completion := &fakeCompletion{output: modelOutput}
	uc, _ := newTestUsecase(parser, completion, false)

	out, err := uc.Tailor(context.Background(), "https://example.com/cv.pdf", "Looking for a backend engineer")

	require.NoError(t, err)
	assert.Equal(t, modelOutput, string(out))
	assert.Equal(t, []string{"https://example.com/cv.pdf"}, parser.urls)
	require.Len(t, completion.prompts, 1)
	prompt := completion.prompts[0]
	assert.Contains(t, prompt, "1: Engineer at Acme in Unknown Location, with 7.38 years of experience starting from 2019-06-01 and presently working.")
	assert.NotContains(t, prompt, "About me")
	assert.Contains(t, prompt, "applying to:\n\nLooking for a backend engineer")
	assert.Equal(t, resume.SystemPrompt, completion.systems[0])
}

func TestTailor_GraduationErrorIsTolerated(t *testing.T) {
	parser := &fakeParser{body: []byte(`{"cv":{"educationHistory":[{"schoolName":"LUMS","graduatedAt":2018}]}}`)}
	completion := &fakeCompletion{output: modelOutput}
	uc, hook := newTestUsecase(parser, completion, false)

	_, err := uc.Tailor(context.Background(), "u", "jd")

	require.NoError(t, err)
	assert.Contains(t, completion.prompts[0], "graduated at Unknown graduation date")
	var warnings []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry.Message)
		}
	}
	assert.Contains(t, warnings, "could not normalize education dates")
}

func TestTailor_ParserError(t *testing.T) {
	upstream := &service.UpstreamError{Service: "cv parser", StatusCode: 500}
	completion := &fakeCompletion{}
	uc, _ := newTestUsecase(&fakeParser{err: upstream}, completion, false)

	_, err := uc.Tailor(context.Background(), "u", "jd")

	assert.ErrorIs(t, err, upstream)
	assert.Empty(t, completion.prompts)
}

func TestTailor_MissingCV(t *testing.T) {
	uc, _ := newTestUsecase(&fakeParser{body: []byte(`{"message":"could not parse"}`)}, &fakeCompletion{}, false)

	_, err := uc.Tailor(context.Background(), "u", "jd")

	assert.ErrorIs(t, err, ErrMissingCV)
}

func TestTailor_CompletionError(t *testing.T) {
	boom := errors.New("connection reset")
	uc, _ := newTestUsecase(&fakeParser{body: []byte(`{"cv":{}}`)}, &fakeCompletion{err: boom}, false)

	_, err := uc.Tailor(context.Background(), "u", "jd")

	assert.ErrorIs(t, err, boom)
}

func TestTailor_InvalidJSONOutput(t *testing.T) {
	uc, _ := newTestUsecase(&fakeParser{body: []byte(`{"cv":{}}`)}, &fakeCompletion{output: "Sure! Here is your resume"}, false)

	_, err := uc.Tailor(context.Background(), "u", "jd")

	var outputErr *OutputError
	require.True(t, errors.As(err, &outputErr))
	assert.Equal(t, "Sure! Here is your resume", outputErr.Output)
}

func TestTailor_SchemaValidation(t *testing.T) {
	completion := &fakeCompletion{output: `{"cv":{"city":"Dubai"}}`}

	uc, _ := newTestUsecase(&fakeParser{body: []byte(`{"cv":{}}`)}, completion, false)
	_, err := uc.Tailor(context.Background(), "u", "jd")
	require.NoError(t, err)

	uc, _ = newTestUsecase(&fakeParser{body: []byte(`{"cv":{}}`)}, completion, true)
	_, err = uc.Tailor(context.Background(), "u", "jd")
	var validationErr *schema.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
}

func TestDecodeResume(t *testing.T) {
	cv, err := DecodeResume([]byte(`{"cv":{"city":"Dubai","country":null,"skills":["Go"],"languages":["English",null],
		"workHistory":[{"title":null,"startAt":"2020-01-01"}]}}`))

	require.NoError(t, err)
	assert.Equal(t, "Dubai", *cv.City)
	assert.Nil(t, cv.Country)
	assert.Equal(t, []string{"Go"}, cv.Skills)
	require.Len(t, cv.Languages, 2)
	assert.Nil(t, cv.Languages[1])
	assert.Nil(t, cv.WorkHistory[0].Title)
}

func TestDecodeResume_Malformed(t *testing.T) {
	_, err := DecodeResume([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMissingCV)

	_, err = DecodeResume([]byte(`{"cv":{"skills":"Go"}}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode resume record")
}
