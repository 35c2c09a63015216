package contextkeys

// ContextKey is the type for values this app stores in request contexts,
// so keys cannot collide with other packages.
type ContextKey string

const (
	// DBContextKey carries the current *gorm.DB (pool or transaction).
	DBContextKey ContextKey = "db"
)
