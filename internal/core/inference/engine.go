// Package inference turns collected Reddit activity into a persona record,
// asking a language model first and falling back to keyword heuristics.
package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/common"
	"github.com/agenthands/persona/internal/core/heuristic"
	"github.com/agenthands/persona/internal/core/model"
	"github.com/agenthands/persona/internal/llm"
	"github.com/agenthands/persona/internal/logging"
	"github.com/agenthands/persona/internal/metrics"
)

// Inference paths, reported in logs and the persona_inference_total counter.
const (
	PathLLM       = "llm"
	PathHeuristic = "heuristic"
	PathEmpty     = "empty"
)

type Request struct {
	Username string
	Posts    []model.Item
	Comments []model.Item
	// Photo is used as-is when set; otherwise a placeholder is generated.
	Photo string
}

type Engine struct {
	LLM     llm.LLMClient
	Prompts config.PersonaPrompts
	Timeout time.Duration
	log     *logrus.Logger
}

// NewEngine builds an engine. A nil llmClient sends every request down the
// heuristic path.
func NewEngine(llmClient llm.LLMClient, prompts config.PersonaPrompts, timeout time.Duration, logger *logrus.Logger) *Engine {
	if prompts.Persona == "" {
		prompts.Persona = config.DefaultPersonaPrompt
	}
	return &Engine{
		LLM:     llmClient,
		Prompts: prompts,
		Timeout: timeout,
		log:     logging.OrStandard(logger),
	}
}

// Infer never fails: model errors and undecodable replies downgrade to the
// heuristic analysis.
func (e *Engine) Infer(ctx context.Context, req Request) model.Persona {
	p, path := e.infer(ctx, req)
	metrics.InferenceTotal.WithLabelValues(path).Inc()

	// A fetched avatar wins over one named by the model.
	if req.Photo != "" {
		p.Photo = req.Photo
	}
	if p.Photo == "" {
		p.Photo = Avatar(req.Username)
	}
	return p
}

func (e *Engine) infer(ctx context.Context, req Request) (model.Persona, string) {
	if len(req.Posts) == 0 && len(req.Comments) == 0 {
		return model.Empty(req.Username), PathEmpty
	}

	if e.LLM != nil {
		p, err := e.analyze(ctx, req)
		if err == nil {
			return p, PathLLM
		}
		e.log.WithFields(logrus.Fields{
			"username": req.Username,
			"error":    err,
		}).Warn("llm analysis failed, using heuristic analysis")
	}

	return heuristic.Analyze(req.Username, req.Posts, req.Comments), PathHeuristic
}

// analyze is the model path on its own; the caller decides what to do with an error.
func (e *Engine) analyze(ctx context.Context, req Request) (model.Persona, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(e.Prompts.Persona, req.Username, BuildCorpus(req.Posts, req.Comments))

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.Persona{}, fmt.Errorf("failed to generate persona: %w", err)
	}

	analysis, err := common.ParseJSON[model.Analysis](response)
	if err != nil {
		return model.Persona{}, fmt.Errorf("failed to decode persona: %w", err)
	}

	return analysis.Persona(req.Username), nil
}
