package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tpdc055/sheriff/internal/domain"
	"github.com/tpdc055/sheriff/internal/netstate"
	"github.com/tpdc055/sheriff/internal/observability"
	"github.com/tpdc055/sheriff/internal/outbox"
	"github.com/tpdc055/sheriff/internal/store"
)

// Config for the HTTP API handler.
type Config struct {
	Store    *store.Store
	Net      *netstate.Signal
	BasePath string
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"bad_request"`
	Message string         `json:"message" example:"location is required"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the enforcement API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "validation") {
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	hcfg := huma.DefaultConfig("Sheriff Enforcement API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	hcfg.DocsPath = "" // custom Swagger UI below
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerDocs(router, basePath)
	registerHealth(group)
	registerStatus(group, cfg)
	registerOfficer(group, cfg)
	registerWrits(group, cfg.Store)
	registerAttempts(group, cfg.Store)
	registerSeizures(group, cfg.Store)
	registerFees(group, cfg.Store)
	registerQueue(group, cfg.Store)
	registerNetstate(group, cfg)
	registerEvents(group, cfg.Store)
	registerOpenAPI(router, api, basePath)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	var ve store.ValidationError
	if errors.As(err, &ve) {
		return newAPIError(http.StatusBadRequest, "bad_request", err.Error(), map[string]any{"field": ve.Field})
	}
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, outbox.ErrNotFound) {
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	}
	msg := err.Error()
	lowered := strings.ToLower(msg)
	switch {
	case strings.Contains(lowered, "invalid writ status transition"),
		strings.Contains(lowered, "already exists"),
		strings.Contains(lowered, "already paid"),
		strings.Contains(lowered, "already synced"):
		return newAPIError(http.StatusConflict, "conflict", msg, nil)
	case strings.Contains(lowered, "invalid") || strings.Contains(lowered, "required") || strings.Contains(lowered, "unknown"):
		return newAPIError(http.StatusBadRequest, "bad_request", msg, nil)
	default:
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": msg})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerDocs(r chi.Router, basePath string) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string) {
	var spec []byte
	specPath := path.Join(basePath, "openapi.json")
	r.Get(specPath, func(w http.ResponseWriter, r *http.Request) {
		if spec == nil {
			spec, _ = json.Marshal(api.OpenAPI())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

func swaggerHTML(basePath string) string {
	specURL := path.Join("/", path.Join(basePath, "openapi.json"))
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Sheriff API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, specURL)
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerStatus(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Store and sync status",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body StatusResponse `json:"body"`
	}, error) {
		pending, err := cfg.Store.PendingSyncCount(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		lastSync, err := cfg.Store.LastSyncTime(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		usage, err := cfg.Store.UsageReport(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body StatusResponse `json:"body"`
		}{Body: StatusResponse{
			Online:      cfg.Store.IsOnline(),
			PendingSync: pending,
			LastSync:    lastSync,
			Storage:     usage,
			Stats:       cfg.Store.Stats(),
		}}, nil
	})
}

func registerOfficer(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "get-officer",
		Method:      http.MethodGet,
		Path:        "/officer",
		Summary:     "Configured enforcement officer",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body domain.Officer `json:"body"`
	}, error) {
		var o domain.Officer
		if c := cfg.Store.Config; c != nil {
			o = domain.Officer{ID: c.Officer.ID, Name: c.Officer.Name, Badge: c.Officer.Badge, Zone: c.Officer.Zone}
		}
		return &struct {
			Body domain.Officer `json:"body"`
		}{Body: o}, nil
	})
}

func registerWrits(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-writs",
		Method:      http.MethodGet,
		Path:        "/writs",
		Summary:     "List writs",
	}, func(ctx context.Context, input *struct {
		Status string `query:"status" required:"false" doc:"filter by enforcement status"`
	}) (*struct {
		Body []domain.Writ `json:"body"`
	}, error) {
		writs := s.List()
		if input.Status != "" {
			filtered := writs[:0]
			for _, w := range writs {
				if w.Status == input.Status {
					filtered = append(filtered, w)
				}
			}
			writs = filtered
		}
		return &struct {
			Body []domain.Writ `json:"body"`
		}{Body: writs}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-writ",
		Method:      http.MethodGet,
		Path:        "/writs/{writ_id}",
		Summary:     "Get a writ",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		WritID string `path:"writ_id"`
	}) (*struct {
		Body domain.Writ `json:"body"`
	}, error) {
		w, err := s.Get(input.WritID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Writ `json:"body"`
		}{Body: w}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-writ",
		Method:      http.MethodPatch,
		Path:        "/writs/{writ_id}",
		Summary:     "Update writ fields",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		WritID string           `path:"writ_id"`
		Body   UpdateWritRequest `json:"body"`
	}) (*struct {
		Body domain.Writ `json:"body"`
	}, error) {
		opts := store.UpdateOptions{
			ID:              input.WritID,
			Status:          valueOr(input.Body.Status),
			ServiceStatus:   valueOr(input.Body.ServiceStatus),
			AssignedOfficer: input.Body.AssignedOfficer,
			Priority:        valueOr(input.Body.Priority),
			Instructions:    input.Body.Instructions,
			ActorID:         input.Body.ActorID,
			Force:           input.Body.Force,
		}
		w, err := s.UpdateWrit(ctx, opts)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Writ `json:"body"`
		}{Body: w}, nil
	})
}

func registerAttempts(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID:   "log-service-attempt",
		Method:        http.MethodPost,
		Path:          "/writs/{writ_id}/attempts",
		Summary:       "Log a service attempt",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		WritID string               `path:"writ_id"`
		Body   LogAttemptRequest    `json:"body"`
	}) (*struct {
		Body AttemptResponse `json:"body"`
	}, error) {
		w, attempt, err := s.LogServiceAttempt(ctx, store.AttemptOptions{
			WritID:         input.WritID,
			Date:           input.Body.Date,
			Officer:        input.Body.Officer,
			Outcome:        input.Body.Outcome,
			Notes:          input.Body.Notes,
			Location:       input.Body.Location,
			GPSCoordinates: input.Body.GPSCoordinates,
			WitnessName:    input.Body.WitnessName,
			Signature:      input.Body.Signature,
			ActorID:        input.Body.ActorID,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body AttemptResponse `json:"body"`
		}{Body: AttemptResponse{Writ: w, Attempt: attempt}}, nil
	})
}

func registerSeizures(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID:   "record-seizure",
		Method:        http.MethodPost,
		Path:          "/writs/{writ_id}/seizures",
		Summary:       "Record a seizure",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		WritID string                `path:"writ_id"`
		Body   RecordSeizureRequest  `json:"body"`
	}) (*struct {
		Body SeizureResponse `json:"body"`
	}, error) {
		w, item, err := s.RecordSeizure(ctx, store.SeizureOptions{
			WritID:         input.WritID,
			Description:    input.Body.Description,
			EstimatedValue: input.Body.EstimatedValue,
			Condition:      input.Body.Condition,
			Location:       input.Body.Location,
			SeizedDate:     input.Body.SeizedDate,
			Photos:         input.Body.Photos,
			GPSCoordinates: input.Body.GPSCoordinates,
			ActorID:        input.Body.ActorID,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body SeizureResponse `json:"body"`
		}{Body: SeizureResponse{Writ: w, Item: item, TotalSeizedValue: w.TotalSeizedValue()}}, nil
	})
}

func registerFees(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-fee",
		Method:        http.MethodPost,
		Path:          "/writs/{writ_id}/fees",
		Summary:       "Add an enforcement fee",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		WritID string         `path:"writ_id"`
		Body   AddFeeRequest  `json:"body"`
	}) (*struct {
		Body FeeResponse `json:"body"`
	}, error) {
		w, fee, err := s.AddFee(ctx, store.FeeOptions{
			WritID:        input.WritID,
			Description:   input.Body.Description,
			Amount:        input.Body.Amount,
			Paid:          input.Body.Paid,
			PaidDate:      input.Body.PaidDate,
			ReceiptNumber: input.Body.ReceiptNumber,
			ActorID:       input.Body.ActorID,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body FeeResponse `json:"body"`
		}{Body: FeeResponse{Writ: w, Fee: fee, Outstanding: w.OutstandingFees()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "pay-fee",
		Method:      http.MethodPost,
		Path:        "/writs/{writ_id}/fees/{fee_id}/pay",
		Summary:     "Mark a fee paid",
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		WritID string         `path:"writ_id"`
		FeeID  string         `path:"fee_id"`
		Body   PayFeeRequest  `json:"body"`
	}) (*struct {
		Body domain.Writ `json:"body"`
	}, error) {
		w, err := s.MarkFeePaid(ctx, input.WritID, input.FeeID, input.Body.PaidDate, input.Body.ReceiptNumber, input.Body.ActorID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Writ `json:"body"`
		}{Body: w}, nil
	})
}

func registerQueue(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-queue",
		Method:      http.MethodGet,
		Path:        "/queue",
		Summary:     "List offline queue entries",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body QueueResponse `json:"body"`
	}, error) {
		entries, err := s.Queue.List(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		pending, err := s.Queue.PendingCount(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body QueueResponse `json:"body"`
		}{Body: QueueResponse{Entries: entries, Pending: pending}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-queue",
		Method:      http.MethodDelete,
		Path:        "/queue",
		Summary:     "Clear the offline queue",
		Description: "Irreversible. Intended for demo and reset flows only.",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body QueueResponse `json:"body"`
	}, error) {
		if err := s.Queue.Clear(ctx); err != nil {
			return nil, handleError(err)
		}
		observability.PendingSyncEntries.Set(0)
		return &struct {
			Body QueueResponse `json:"body"`
		}{Body: QueueResponse{Entries: []domain.QueueEntry{}, Pending: 0}}, nil
	})
}

func registerNetstate(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "set-netstate",
		Method:      http.MethodPut,
		Path:        "/netstate",
		Summary:     "Report a connectivity transition",
		Description: "The transition is taken at face value; writes are never gated by it.",
	}, func(ctx context.Context, input *struct {
		Body NetstateRequest `json:"body"`
	}) (*struct {
		Body NetstateRequest `json:"body"`
	}, error) {
		if cfg.Net != nil {
			cfg.Net.Set(input.Body.Online)
		}
		return &struct {
			Body NetstateRequest `json:"body"`
		}{Body: NetstateRequest{Online: cfg.Store.IsOnline()}}, nil
	})
}

func registerEvents(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "List audit events",
	}, func(ctx context.Context, input *struct {
		Limit  int    `query:"limit" required:"false"`
		Cursor int64  `query:"cursor" required:"false"`
		Type   string `query:"type" required:"false"`
		WritID string `query:"writ_id" required:"false"`
	}) (*struct {
		Body []EventResponse `json:"body"`
	}, error) {
		records, err := s.Events.Latest(ctx, input.Limit, input.Cursor, input.Type, input.WritID)
		if err != nil {
			return nil, handleError(err)
		}
		out := make([]EventResponse, 0, len(records))
		for _, r := range records {
			e := EventResponse{ID: r.ID, TS: r.TS, Type: r.Type, WritID: r.WritID, ActorID: r.ActorID}
			_ = json.Unmarshal([]byte(r.Payload), &e.Payload)
			out = append(out, e)
		}
		return &struct {
			Body []EventResponse `json:"body"`
		}{Body: out}, nil
	})
}

func valueOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
