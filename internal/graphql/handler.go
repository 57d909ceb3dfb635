package graphql

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	graphqlgo "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/errs"
	"library-catalog/internal/shared/metrics"
	"library-catalog/internal/shared/middleware"
)

const (
	codeValidationFailed = "GRAPHQL_VALIDATION_FAILED"

	maxBodyBytes = 1 << 20
)

// Request is one GraphQL operation as posted over HTTP
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Response mirrors the GraphQL response envelope
type Response struct {
	Data   json.RawMessage         `json:"data,omitempty"`
	Errors []*gqlerrors.QueryError `json:"errors,omitempty"`
}

type Handler struct {
	schema  *graphqlgo.Schema
	metrics *metrics.Metrics
}

func NewHandler(schema *graphqlgo.Schema, m *metrics.Metrics) *Handler {
	return &Handler{schema: schema, metrics: m}
}

// Serve executes a single operation or a JSON array of operations.
// Operations in a batch run in order and fail independently.
func (h *Handler) Serve(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		middleware.AbortWithGraphQLError(c, http.StatusRequestEntityTooLarge, "request body too large", codeValidationFailed)
		return
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var batch []Request
		if err := json.Unmarshal(body, &batch); err != nil {
			middleware.AbortWithGraphQLError(c, http.StatusBadRequest, "malformed batch request body", codeValidationFailed)
			return
		}
		if len(batch) == 0 {
			middleware.AbortWithGraphQLError(c, http.StatusBadRequest, "empty batch", codeValidationFailed)
			return
		}

		out := make([]*Response, 0, len(batch))
		for i := range batch {
			out = append(out, h.execute(c, batch[i]))
		}
		c.JSON(http.StatusOK, out)
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		middleware.AbortWithGraphQLError(c, http.StatusBadRequest, "malformed request body", codeValidationFailed)
		return
	}
	c.JSON(http.StatusOK, h.execute(c, req))
}

func (h *Handler) execute(c *gin.Context, req Request) *Response {
	if req.Query == "" {
		return &Response{Errors: []*gqlerrors.QueryError{{
			Message:    "query must not be empty",
			Extensions: map[string]interface{}{"code": codeValidationFailed},
		}}}
	}

	ctx, executed := withRootFields(c.Request.Context())

	start := time.Now()
	result := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	resp := &Response{Data: result.Data, Errors: result.Errors}
	codes := make([]string, 0, len(resp.Errors))
	for _, qe := range resp.Errors {
		sanitize(qe)
		codes = append(codes, errorCode(qe))
	}

	h.metrics.ObserveOperation(executed.label(), time.Since(start), codes)

	if len(codes) > 0 {
		log.Debug().
			Str("request_id", middleware.RequestIDFromContext(c.Request.Context())).
			Str("operation", truncateName(req.OperationName)).
			Str("root_fields", executed.label()).
			Strs("codes", codes).
			Msg("graphql operation returned errors")
	}
	return resp
}

// sanitize gives every error a code. Errors raised while executing a field
// that did not come from a resolver (recovered panics) are replaced by a
// generic internal error.
func sanitize(qe *gqlerrors.QueryError) {
	if qe.Extensions != nil {
		if _, ok := qe.Extensions["code"]; ok {
			return
		}
	}

	if len(qe.Path) == 0 {
		setCode(qe, codeValidationFailed)
		return
	}

	if qe.ResolverError != nil {
		var ext errs.Extensioner
		if errors.As(qe.ResolverError, &ext) {
			if qe.Extensions == nil {
				qe.Extensions = map[string]interface{}{}
			}
			for k, v := range ext.Extensions() {
				qe.Extensions[k] = v
			}
			return
		}
		setCode(qe, errs.CodeInternal)
		return
	}

	qe.Message = "internal server error"
	setCode(qe, errs.CodeInternal)
}

func setCode(qe *gqlerrors.QueryError, code string) {
	if qe.Extensions == nil {
		qe.Extensions = map[string]interface{}{}
	}
	qe.Extensions["code"] = code
}

func errorCode(qe *gqlerrors.QueryError) string {
	if code, ok := qe.Extensions["code"].(string); ok {
		return code
	}
	return errs.CodeInternal
}
