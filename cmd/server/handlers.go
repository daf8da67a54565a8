package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/baditaflorin/go_sts_similarity/internal/adapters/report"
	"github.com/baditaflorin/go_sts_similarity/internal/config"
	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/pkg/stseval"
	"github.com/baditaflorin/l"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const requestTimeout = 60 * time.Second

// ScoreRequest asks for the metrics of one pair.
type ScoreRequest struct {
	SentenceA string `json:"sentence_a"`
	SentenceB string `json:"sentence_b"`
}

// ScoreResponse holds the metrics of one pair.
type ScoreResponse struct {
	NIST          float64 `json:"nist"`
	BLEU          float64 `json:"bleu"`
	WordErrorRate float64 `json:"word_error_rate"`
	LcsRatio      float64 `json:"lcs_ratio"`
	EditDistance  int     `json:"edit_distance"`
}

// EvaluateRequest carries labelled pairs.
type EvaluateRequest struct {
	Pairs  []stseval.SentencePair `json:"pairs"`
	Labels []float64              `json:"labels"`
}

// EvaluateResponse reports one coefficient per metric; undefined ones are null.
type EvaluateResponse struct {
	RequestID      string                   `json:"request_id"`
	Pairs          int                      `json:"pairs"`
	Correlations   []report.CorrelationJSON `json:"correlations"`
	ProcessingTime string                   `json:"processing_time"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	evaluator *stseval.Evaluator
	logger    l.Logger
	maxPairs  int
}

func newHandler(evaluator *stseval.Evaluator, logger l.Logger, cfg config.ServerConfig) *handler {
	return &handler{evaluator: evaluator, logger: logger, maxPairs: cfg.MaxPairs}
}

// serve is the main fasthttp request handler
func (h *handler) serve(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.SetUserValue("request_id", requestID)

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "STSSimilarityServer")
	ctx.Response.Header.Set("X-Request-ID", requestID)

	switch string(ctx.Path()) {
	case "/health":
		h.handleHealthCheck(ctx)
	case "/score":
		h.handleScore(ctx)
	case "/evaluate":
		h.handleEvaluate(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}

	h.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (h *handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *handler) handleScore(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ScoreRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	scores, err := h.evaluator.Score(c, stseval.SentencePair{A: req.SentenceA, B: req.SentenceB})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		h.writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, ScoreResponse{
		NIST:          scores.NIST,
		BLEU:          scores.BLEU,
		WordErrorRate: scores.WordErrorRate,
		LcsRatio:      scores.LcsRatio,
		EditDistance:  scores.EditDistance,
	})
}

func (h *handler) handleEvaluate(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req EvaluateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Pairs) > h.maxPairs {
		ctx.SetStatusCode(fasthttp.StatusRequestEntityTooLarge)
		h.writeJSONError(ctx, fmt.Sprintf("At most %d pairs per request", h.maxPairs))
		return
	}

	c, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := h.evaluator.Evaluate(c, req.Pairs, req.Labels)
	switch {
	case errors.Is(err, domain.ErrEmptyDataset),
		errors.Is(err, domain.ErrLengthMismatch),
		errors.Is(err, domain.ErrTooFewSamples):
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, err.Error())
		return
	case err != nil:
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.writeJSONError(ctx, err.Error())
		return
	}

	requestID, _ := ctx.UserValue("request_id").(string)
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, EvaluateResponse{
		RequestID:      requestID,
		Pairs:          len(req.Pairs),
		Correlations:   report.Correlations(result),
		ProcessingTime: time.Since(startTime).String(),
	})
}

func (h *handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

func (h *handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}
