package logger

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

type humaContext = huma.Context

type fakeCtx struct {
	humaContext
	op     *huma.Operation
	status int
}

func (f *fakeCtx) Operation() *huma.Operation { return f.op }
func (f *fakeCtx) Context() context.Context   { return context.Background() }
func (f *fakeCtx) Method() string             { return "GET" }
func (f *fakeCtx) URL() url.URL               { return url.URL{Path: "/api/v1/health"} }
func (f *fakeCtx) RemoteAddr() string         { return "127.0.0.1:54321" }
func (f *fakeCtx) Status() int                { return f.status }

func TestMiddlewareLogsOperationID(t *testing.T) {
	var buf bytes.Buffer
	mw := New(slog.New(slog.NewJSONHandler(&buf, nil))).Middleware()

	mw(&fakeCtx{op: &huma.Operation{OperationID: "get-health"}, status: 200}, func(huma.Context) {})

	out := buf.String()
	assert.Contains(t, out, `"operation":"get-health"`)
	assert.Contains(t, out, `"level":"INFO"`)
}

func TestMiddlewareElevatesServerErrors(t *testing.T) {
	var buf bytes.Buffer
	mw := New(slog.New(slog.NewJSONHandler(&buf, nil))).Middleware()

	mw(&fakeCtx{op: &huma.Operation{OperationID: "trigger-sync"}, status: 502}, func(huma.Context) {})

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}
