package enrichkit

import (
	badrowspkg "github.com/streamforge/enrichkit/internal/core/badrows"
	configpkg "github.com/streamforge/enrichkit/internal/core/config"
	extractpkg "github.com/streamforge/enrichkit/internal/core/extract"
	loggingpkg "github.com/streamforge/enrichkit/internal/core/logging"
	metricspkg "github.com/streamforge/enrichkit/internal/core/metrics"
	rowsourcepkg "github.com/streamforge/enrichkit/internal/core/rowsource"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
	sinkpkg "github.com/streamforge/enrichkit/internal/core/sink"
	sqloutputpkg "github.com/streamforge/enrichkit/internal/core/sqloutput"
	validationpkg "github.com/streamforge/enrichkit/internal/core/validation"
)

type (
	// Self-describing vocabulary.
	Document  = selfdescpkg.Document
	SchemaKey = selfdescpkg.SchemaKey
	SchemaVer = selfdescpkg.SchemaVer
	Criterion = selfdescpkg.Criterion

	// Validation orchestration.
	Extractor       = extractpkg.Extractor
	ExtractInput    = extractpkg.Input
	ExtractResult   = extractpkg.Result
	ExtractorOption = extractpkg.Option
	RegistryClient  = validationpkg.RegistryClient
	Validated       = validationpkg.Validated
	ViolationKind   = validationpkg.Kind
	BatchError      = validationpkg.BatchError
	BatchViolation  = validationpkg.BatchViolation

	NotJSONError           = validationpkg.NotJSONError
	NotSelfDescribingError = validationpkg.NotSelfDescribingError
	CriterionMismatchError = validationpkg.CriterionMismatchError
	RegistryFailure        = validationpkg.RegistryFailure

	// Tabular output conversion.
	Converter            = sqloutputpkg.Converter
	ConverterOption      = sqloutputpkg.ConverterOption
	OutputSpec           = sqloutputpkg.Spec
	DescribeMode         = sqloutputpkg.DescribeMode
	RowCountMode         = sqloutputpkg.RowCountMode
	NamingMode           = sqloutputpkg.NamingMode
	Row                  = sqloutputpkg.Row
	Column               = sqloutputpkg.Column
	ValueKind            = sqloutputpkg.ValueKind
	RowSource            = sqloutputpkg.RowSource
	InvalidRowCountError = sqloutputpkg.InvalidRowCountError
	PgxSource            = rowsourcepkg.PgxSource

	// Configuration and supporting infrastructure.
	Config            = configpkg.Config
	OutputConfig      = configpkg.OutputConfig
	FailureSink       = sinkpkg.FailureSink
	ValidationMetrics = metricspkg.ValidationMetrics
	LogFields         = loggingpkg.LogFields
	ServiceLogger     = loggingpkg.ServiceLogger
)

// Constructors and operations.
var (
	NewExtractor               = extractpkg.NewExtractor
	WithLogger                 = extractpkg.WithLogger
	WithMetrics                = extractpkg.WithMetrics
	WithContextsCriterion      = extractpkg.WithContextsCriterion
	WithUnstructEventCriterion = extractpkg.WithUnstructEventCriterion

	ParseSchemaKey = selfdescpkg.ParseSchemaKey
	ParseDocument  = selfdescpkg.ParseDocument
	NewCriterion   = selfdescpkg.NewCriterion

	Convert              = sqloutputpkg.Convert
	ConvertSource        = sqloutputpkg.ConvertSource
	CollectRows          = sqloutputpkg.Collect
	NewConverter         = sqloutputpkg.NewConverter
	WithConverterLogger  = sqloutputpkg.WithLogger
	WithConverterMetrics = sqloutputpkg.WithMetrics
	ParseDescribeMode    = sqloutputpkg.ParseDescribeMode
	ParseRowCountMode    = sqloutputpkg.ParseRowCountMode
	ParseNamingMode      = sqloutputpkg.ParseNamingMode
	FromPgx              = rowsourcepkg.FromPgx

	NewFailureSink        = sinkpkg.NewFailureSink
	NewValidationMetrics  = metricspkg.NewValidationMetrics
	NewSlogServiceLogger  = loggingpkg.NewSlogServiceLogger
	NewWatermillLogger    = loggingpkg.NewWatermillServiceLogger
	ViolationRecord       = badrowspkg.ViolationRecord
	SupersededRecord      = badrowspkg.SupersededRecord
	ClassifyViolation     = validationpkg.Classify
	ValidateDocument      = validationpkg.ValidateDocument
	ValidateDocumentBatch = validationpkg.ValidateBatch
)

// Violation sentinels and describe/row-count enums re-exported for callers.
var (
	ErrNotJSON           = validationpkg.ErrNotJSON
	ErrNotSelfDescribing = validationpkg.ErrNotSelfDescribing
	ErrCriterionMismatch = validationpkg.ErrCriterionMismatch
	ErrRegistry          = validationpkg.ErrRegistry
	ErrInvalidRowCount   = sqloutputpkg.ErrInvalidRowCount
)

const (
	DescribeAllRows  = sqloutputpkg.DescribeAllRows
	DescribeEveryRow = sqloutputpkg.DescribeEveryRow

	ExactlyOne  = sqloutputpkg.ExactlyOne
	AtMostOne   = sqloutputpkg.AtMostOne
	AtLeastOne  = sqloutputpkg.AtLeastOne
	AtLeastZero = sqloutputpkg.AtLeastZero

	KindInteger  = sqloutputpkg.KindInteger
	KindFloat    = sqloutputpkg.KindFloat
	KindBoolean  = sqloutputpkg.KindBoolean
	KindText     = sqloutputpkg.KindText
	KindTemporal = sqloutputpkg.KindTemporal
	KindOpaque   = sqloutputpkg.KindOpaque

	NamingAsIs       = sqloutputpkg.NamingAsIs
	NamingCamelCase  = sqloutputpkg.NamingCamelCase
	NamingPascalCase = sqloutputpkg.NamingPascalCase
	NamingSnakeCase  = sqloutputpkg.NamingSnakeCase
	NamingLowerCase  = sqloutputpkg.NamingLowerCase
	NamingUpperCase  = sqloutputpkg.NamingUpperCase
)
