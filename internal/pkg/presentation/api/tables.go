package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/attribute-table/internal/pkg/application/attributetable"
	"github.com/diwise/attribute-table/internal/pkg/presentation/api/auth"
	apierrors "github.com/diwise/attribute-table/internal/pkg/presentation/api/errors"
	"github.com/diwise/attribute-table/internal/pkg/presentation/render"
	"github.com/diwise/attribute-table/pkg/assets"
	"github.com/diwise/attribute-table/pkg/table"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NewCreateAttributeTableHandler handles POST requests carrying an asset
// export and responds with the wide attribute table in the format asked for
// by the Accept header.
func NewCreateAttributeTableHandler(cfg Config, authenticator auth.Enticator) http.HandlerFunc {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		conversionID := uuid.New().String()
		format := formatFromAccept(r.Header.Get("Accept"))

		ctx, span := tracer.Start(r.Context(), "create-attribute-table",
			trace.WithAttributes(
				attribute.String(TraceAttributeConversionID, conversionID),
				attribute.String(TraceAttributeFormat, string(format)),
			),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)
		ctx = logging.NewContextWithLogger(ctx, log, "conversion_id", conversionID)
		log = logging.GetFromContext(ctx)

		w.Header().Set(ConversionIDHeader, conversionID)

		err = authenticator.CheckAccess(ctx, r)
		if err != nil {
			log.Warn("access not granted", "err", err.Error())
			apierrors.ReportUnauthorizedRequest(w, "not authorized", traceID)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(cfg.MaxRequestBody.Bytes())))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apierrors.ReportNewRequestTooLarge(w, fmt.Sprintf("request body exceeds %s", cfg.MaxRequestBody.HumanReadable()), traceID)
				return
			}
			apierrors.ReportNewBadRequestData(w, "failed to read request body", traceID)
			return
		}

		export, err := assets.DecodeBytes(body)
		if err != nil {
			log.Info("unable to decode asset export", "err", err.Error())
			apierrors.ReportNewBadRequestData(w, err.Error(), traceID)
			return
		}

		result, err := attributetable.Run(ctx, export, cfg.Layout)
		if err != nil {
			if errors.Is(err, table.ErrAmbiguousPivotKey) {
				apierrors.ReportNewAmbiguousAttribute(w, err.Error(), traceID)
				return
			}
			apierrors.ReportNewInternalError(w, "failed to build attribute table", traceID)
			return
		}

		write, err := render.ForFormat(string(format))
		if err != nil {
			apierrors.ReportNewInternalError(w, err.Error(), traceID)
			return
		}

		buf := &bytes.Buffer{}
		err = write(buf, result)
		if err != nil {
			log.Error("failed to render attribute table", "err", err.Error())
			apierrors.ReportNewInternalError(w, "failed to render attribute table", traceID)
			return
		}

		w.Header().Add("Content-Type", render.ContentType(format))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	})
}

func formatFromAccept(accept string) render.Format {
	switch {
	case strings.Contains(accept, "text/csv"):
		return render.FormatCSV
	case strings.Contains(accept, "text/plain"):
		return render.FormatText
	default:
		return render.FormatJSON
	}
}
