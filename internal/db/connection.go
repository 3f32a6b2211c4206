package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/sen-dwh/aid-etl/internal/config"
)

// Connection holds one Postgres connection pool.
type Connection struct {
	DB *sql.DB
}

// NewSourceConnection connects to the operational database holding the
// raw asistencia_humanitaria table.
func NewSourceConnection() (*Connection, error) {
	return connect("SRC")
}

// NewWarehouseConnection connects to the analytical warehouse holding
// the dimension and fact tables.
func NewWarehouseConnection() (*Connection, error) {
	return connect("DWH")
}

func connect(prefix string) (*Connection, error) {
	host := config.GetEnv(prefix+"_PGHOST", "localhost")
	port := config.GetEnv(prefix+"_PGPORT", "5432")
	user := config.GetEnv(prefix+"_PGUSER", "postgres")
	password := config.GetEnv(prefix+"_PGPASSWORD", "postgres")
	dbname := config.GetEnv(prefix+"_PGDATABASE", "asistencia")

	sslmode := "disable"
	if config.GetEnvBool(prefix+"_PGSSL", false) {
		sslmode = "require"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(config.GetEnvInt(prefix+"_PGMAXCONN", 20))
	db.SetMaxIdleConns(config.GetEnvInt(prefix+"_PGIDLECONN", 10))

	return &Connection{DB: db}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}
