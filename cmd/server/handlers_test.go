package main

import (
	"encoding/json"
	"io"
	"testing"

	logadapter "github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/internal/config"
	"github.com/baditaflorin/go_sts_similarity/pkg/stseval"
	"github.com/valyala/fasthttp"
)

func newTestHandler(t *testing.T) *handler {
	t.Helper()
	logger, err := logadapter.NewBackend(logadapter.Options{Output: io.Discard, JSON: true})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	t.Cleanup(func() { _ = logger.Close() })

	ev, err := stseval.New(stseval.WithQuietLogger(), stseval.WithWorkers(1))
	if err != nil {
		t.Fatalf("stseval.New: %v", err)
	}
	cfg := config.Default().Server
	cfg.MaxPairs = 3
	return newHandler(ev, logger, cfg)
}

func do(h *handler, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.serve(ctx)
	return ctx
}

func TestHealth(t *testing.T) {
	ctx := do(newTestHandler(t), fasthttp.MethodGet, "/health", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	if len(ctx.Response.Header.Peek("X-Request-ID")) == 0 {
		t.Error("missing X-Request-ID header")
	}
}

func TestScore(t *testing.T) {
	h := newTestHandler(t)
	ctx := do(h, fasthttp.MethodPost, "/score", `{"sentence_a":"a cat sat","sentence_b":"a cat sat"}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var resp ScoreResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EditDistance != 0 || resp.LcsRatio != 1 || resp.WordErrorRate != 0 {
		t.Errorf("unexpected scores %+v", resp)
	}

	if ctx := do(h, fasthttp.MethodGet, "/score", ""); ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Errorf("GET /score status = %d, want 405", ctx.Response.StatusCode())
	}
	if ctx := do(h, fasthttp.MethodPost, "/score", "{"); ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Errorf("bad JSON status = %d, want 400", ctx.Response.StatusCode())
	}
}

func TestEvaluate(t *testing.T) {
	h := newTestHandler(t)
	body := `{"pairs":[{"sentence_a":"a cat sat","sentence_b":"a cat sat"},{"sentence_a":"a cat sat","sentence_b":"a dog ran"}],"labels":[5,0]}`
	ctx := do(h, fasthttp.MethodPost, "/evaluate", body)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}

	var resp struct {
		RequestID    string `json:"request_id"`
		Pairs        int    `json:"pairs"`
		Correlations []struct {
			Metric string   `json:"metric"`
			R      *float64 `json:"r"`
		} `json:"correlations"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pairs != 2 || resp.RequestID == "" || len(resp.Correlations) != 5 {
		t.Fatalf("unexpected response %s", ctx.Response.Body())
	}
	for _, c := range resp.Correlations {
		switch c.Metric {
		case "NIST", "BLEU":
			if c.R != nil {
				t.Errorf("%s r = %v, want null", c.Metric, *c.R)
			}
		case "EditDistance":
			if c.R == nil || *c.R != -1 {
				t.Errorf("EditDistance r = %v, want -1", c.R)
			}
		}
	}
}

func TestEvaluateRejects(t *testing.T) {
	h := newTestHandler(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"mismatch", `{"pairs":[{"sentence_a":"a","sentence_b":"b"},{"sentence_a":"c","sentence_b":"d"}],"labels":[1]}`, fasthttp.StatusBadRequest},
		{"empty", `{"pairs":[],"labels":[]}`, fasthttp.StatusBadRequest},
		{"too many", `{"pairs":[{},{},{},{}],"labels":[1,2,3,4]}`, fasthttp.StatusRequestEntityTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(h, fasthttp.MethodPost, "/evaluate", tc.body)
			if got := ctx.Response.StatusCode(); got != tc.want {
				t.Errorf("status = %d, want %d (body %s)", got, tc.want, ctx.Response.Body())
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	ctx := do(newTestHandler(t), fasthttp.MethodGet, "/length", "")
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("status = %d, want 404", ctx.Response.StatusCode())
	}
}
