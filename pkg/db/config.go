package db

// Config describes a database connection. Type selects the dialect
// (postgres, mysql or sqlite); for sqlite only Name is used, as the
// file path or ":memory:".
type Config struct {
	Type     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	// Pool settings. Lifetimes are in seconds.
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}
