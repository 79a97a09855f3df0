package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/XSAM/otelsql"
	_ "github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const selectProductsQuery = `SELECT id, name, price, description, image, stock, category FROM products ORDER BY position, id`

// DB wraps the database connection with metrics
type DB struct {
	*sql.DB
	metrics *metrics.AppMetrics
	logger  *zap.Logger
}

// NewDB creates a new database connection with OpenTelemetry instrumentation
func NewDB(ctx context.Context, dsn, serviceName string, m *metrics.AppMetrics, logger *zap.Logger) (*DB, error) {
	driverName, err := otelsql.Register("mysql",
		otelsql.WithAttributes(
			attribute.String("db.system", "mysql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// the catalog is read once at start-up, a small pool is plenty
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(db, otelsql.WithAttributes(
		attribute.String("db.system", "mysql"),
		attribute.String("service.name", serviceName),
	)); err != nil {
		logger.Warn("failed to register otelsql stats metrics", zap.Error(err))
	}

	return New(db, m, logger), nil
}

// New wraps an open connection
func New(db *sql.DB, m *metrics.AppMetrics, logger *zap.Logger) *DB {
	return &DB{DB: db, metrics: m, logger: logger}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// LoadProducts reads the whole catalog. Optional text columns may be NULL.
func (db *DB) LoadProducts(ctx context.Context) ([]models.Product, error) {
	start := time.Now()
	rows, err := db.QueryContext(ctx, selectProductsQuery)
	if err != nil {
		db.metrics.RecordDBQuery(ctx, "SELECT", "products", selectProductsQuery, start, false)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var description, image, category sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &description, &image, &p.Stock, &category); err != nil {
			db.metrics.RecordDBQuery(ctx, "SELECT", "products", selectProductsQuery, start, false)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if p.Price < 0 || p.Stock < 0 {
			return nil, fmt.Errorf("product %s has negative price or stock", p.ID)
		}
		p.Description = description.String
		p.Image = image.String
		p.Category = category.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		db.metrics.RecordDBQuery(ctx, "SELECT", "products", selectProductsQuery, start, false)
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	db.metrics.RecordDBQuery(ctx, "SELECT", "products", selectProductsQuery, start, true)
	db.logger.Info("catalog loaded from database", zap.Int("products", len(products)))
	return products, nil
}

// InitSchema executes schemaSQL statement by statement
func (db *DB) InitSchema(ctx context.Context, schemaSQL string) error {
	statements := splitSQLStatements(schemaSQL)

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w\nStatement: %s", i+1, err, stmt)
		}
	}

	db.logger.Info("database schema initialized", zap.Int("statements", len(statements)))
	return nil
}

// splitSQLStatements drops "--" comment lines and splits on semicolons
func splitSQLStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var cleanedLines []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "--") {
			cleanedLines = append(cleanedLines, line)
		}
	}

	statements := strings.Split(strings.Join(cleanedLines, "\n"), ";")

	var result []string
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}
