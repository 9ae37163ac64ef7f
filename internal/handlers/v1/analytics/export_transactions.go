package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
)

const exportFilename = "transactions.csv"

type ExportTransactionsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type transactionExporter interface {
	ExportCSV(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// ExportTransactionsHandler handles GET /api/export-transactions/.
type ExportTransactionsHandler struct {
	AnalyticsService transactionExporter
}

func NewExportTransactionsHandler(svc transactionExporter) *ExportTransactionsHandler {
	return &ExportTransactionsHandler{AnalyticsService: svc}
}

func (h *ExportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/api/export-transactions/",
		Summary:     "Export transactions as CSV",
		Tags:        []string{"Analytics"},
		Security:    auth.BearerSecurity,
		Responses: map[string]*huma.Response{
			"200": {
				Description: "CSV attachment, newest transaction first",
				Content: map[string]*huma.MediaType{
					"text/csv": {Schema: &huma.Schema{Type: huma.TypeString}},
				},
			},
		},
	}, h.handle)
}

func (h *ExportTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*ExportTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = logging.Time(logData, "exportTransactionsMs", func() error {
		var err error
		body, err = h.AnalyticsService.ExportCSV(ctx, userID)
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "export-transactions", err)
	}

	if logData != nil {
		logData.AddData("exportBytes", len(body))
	}

	return &ExportTransactionsOutput{
		ContentType:        "text/csv",
		ContentDisposition: `attachment; filename="` + exportFilename + `"`,
		Body:               body,
	}, nil
}
