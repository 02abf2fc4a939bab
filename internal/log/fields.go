package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldEntity      = "entity"
	FieldID          = "id"
	FieldMonth       = "month"
	FieldYear        = "year"
	FieldCategory    = "category"
	FieldType        = "type"
	FieldAmountCents = "amount_cents"
	FieldCount       = "count"
	FieldKey         = "key"
)

// Standard component names.
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentData       = "budget_data"
	ComponentPlanned    = "planned_budget"
	ComponentSummary    = "summary"
	ComponentCategory   = "category"
	ComponentStore      = "store"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentExport     = "export"
)

// Standard operation names.
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpUpsert   = "upsert"
	OpNotify   = "notify"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
