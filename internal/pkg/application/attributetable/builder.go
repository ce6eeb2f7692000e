package attributetable

import (
	"context"

	"github.com/diwise/attribute-table/pkg/assets"
	"github.com/diwise/attribute-table/pkg/table"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("attribute-table/builder")

const (
	TraceAttributeObjectCount   string = "object-count"
	TraceAttributeAttributeRows string = "attribute-rows"
	TraceAttributeWideColumns   string = "wide-columns"
)

// Builder chains the pipeline stages over an export. The stages are meant to
// be called in declaration order. A stage whose input has not been produced
// yet works on nil and does nothing. The first error is kept and returned by
// Build, stages called after it are skipped.
type Builder struct {
	export *assets.Export
	cfg    Config

	attributes     *table.Table
	attributeTypes *table.Table

	err error
}

func NewBuilder(export *assets.Export, cfg Config) *Builder {
	if export == nil {
		export = &assets.Export{}
	}

	return &Builder{
		export: export,
		cfg:    cfg,
	}
}

func (b *Builder) ExtractObjectsAttributes() *Builder {
	if b.err == nil {
		b.attributes = FlattenObjectAttributes(b.export.Objects)
	}
	return b
}

func (b *Builder) ExtractAttributeTypes() *Builder {
	if b.err == nil {
		b.attributeTypes = FlattenAttributeTypes(b.export.AttributeTypes)
	}
	return b
}

func (b *Builder) SelectAttributeTypeColumns() *Builder {
	if b.err == nil {
		b.attributeTypes = SelectAttributeTypeColumns(b.attributeTypes)
	}
	return b
}

func (b *Builder) SelectAttributeColumns() *Builder {
	if b.err == nil {
		b.attributes = SelectAttributeColumns(b.attributes)
	}
	return b
}

func (b *Builder) PivotAttributes() *Builder {
	if b.err == nil {
		b.attributes, b.err = PivotAttributes(b.attributes)
	}
	return b
}

func (b *Builder) RenameHeaders() *Builder {
	if b.err == nil {
		b.attributes = RenameHeaders(b.attributes, b.cfg.Headers.Replacements)
	}
	return b
}

func (b *Builder) MapAttributeTypesToHeaders() *Builder {
	if b.err == nil {
		b.attributes = MapAttributeTypesToHeaders(b.attributes, b.attributeTypes, b.cfg.Headers.AttributeIDMatching)
	}
	return b
}

// Build returns the current attribute table, nil if ExtractObjectsAttributes
// never ran, or the first error raised by a stage.
func (b *Builder) Build() (*table.Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.attributes, nil
}

// Run executes every stage in order and returns the wide attribute table.
func Run(ctx context.Context, export *assets.Export, cfg Config) (*table.Table, error) {
	var err error

	ctx, span := tracer.Start(ctx, "build-attribute-table")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	b := NewBuilder(export, cfg).
		ExtractObjectsAttributes().
		ExtractAttributeTypes()

	span.SetAttributes(
		attribute.Int(TraceAttributeObjectCount, len(b.export.Objects)),
		attribute.Int(TraceAttributeAttributeRows, b.attributes.Len()),
	)

	log.Debug("flattened export", "objects", len(b.export.Objects), "attribute_rows", b.attributes.Len(), "attribute_types", b.attributeTypes.Len())

	result, err := b.
		SelectAttributeTypeColumns().
		SelectAttributeColumns().
		PivotAttributes().
		RenameHeaders().
		MapAttributeTypesToHeaders().
		Build()

	if err != nil {
		log.Error("failed to pivot attribute table", "err", err.Error())
		return nil, err
	}

	span.AddEvent("pivoted", trace.WithAttributes(attribute.Int(TraceAttributeWideColumns, len(result.Columns()))))
	log.Debug("built attribute table", "rows", result.Len(), "columns", len(result.Columns()))

	return result, nil
}
