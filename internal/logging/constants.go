package logging

// Standardized field names for structured logging.
const (
	FieldComponent   = "component"
	FieldUser        = "user"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldOperation   = "operation"
	FieldStrategy    = "strategy"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldCacheHits   = "cache_hits"
	FieldCalls       = "calls"
	FieldConcurrency = "concurrency"
	FieldBatch       = "batch"
	FieldSource      = "source"
	FieldEndpoint    = "endpoint"
	FieldAddr        = "addr"
	FieldMethod      = "method"
	FieldStatus      = "status"
	FieldKeyword     = "keyword"
	FieldAnswer      = "answer"
	FieldBackend     = "backend"
	FieldFile        = "file"
)
