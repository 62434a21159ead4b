package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/xhad/vecseed/internal/models"
	"github.com/xhad/vecseed/internal/types"
	"github.com/xhad/vecseed/pkg/seeder"
)

// SQLSTATE classes that mean the credentials were rejected. These recur
// for every subsequent write, so the seeder aborts the whole run on them.
var authErrorCodes = map[string]bool{
	"28000": true, // invalid_authorization_specification
	"28P01": true, // invalid_password
	"42501": true, // insufficient_privilege
}

type DocStoreConfig struct {
	ConnString  string
	Database    string
	Container   string
	VectorDim   int
	Credentials types.CredentialProvider
}

// DocStore is a partitioned document container backed by PostgreSQL with
// the pgvector extension. Records are keyed by (partition_key, id).
type DocStore struct {
	config DocStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(ctx context.Context, config DocStoreConfig) (*DocStore, error) {
	if config.Database == "" {
		config.Database = "vectordb"
	}
	if config.Container == "" {
		config.Container = "Container3"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 1536 // Default for OpenAI embeddings
	}

	poolConfig, err := pgxpool.ParseConfig(config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %v", err)
	}
	poolConfig.ConnConfig.Database = config.Database

	if config.Credentials != nil {
		poolConfig.BeforeConnect = func(ctx context.Context, cc *pgx.ConnConfig) error {
			password, err := config.Credentials.Password(ctx)
			if err != nil {
				return fmt.Errorf("failed to acquire credentials: %w", err)
			}
			cc.Password = password
			return nil
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	ds := &DocStore{
		config: config,
		pool:   pool,
	}

	if err := ds.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return ds, nil
}

func (ds *DocStore) initialize(ctx context.Context) error {
	// Enable pgvector extension
	_, err := ds.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return classify(fmt.Errorf("failed to create vector extension: %v", err), err)
	}

	// Create the container table if it doesn't exist
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			id TEXT NOT NULL,
			partition_key TEXT NOT NULL,
			title TEXT,
			content TEXT,
			category TEXT,
			title_vector vector(%d),
			content_vector vector(%d),
			PRIMARY KEY (partition_key, id)
		)`, ds.config.Container, ds.config.VectorDim, ds.config.VectorDim)

	_, err = ds.pool.Exec(ctx, createTable)
	if err != nil {
		return classify(fmt.Errorf("failed to create container: %v", err), err)
	}

	// Create vector index for similarity search
	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %q
		ON %q
		USING ivfflat (content_vector vector_cosine_ops)
		WITH (lists = 100)`,
		ds.config.Container+"_content_vector_idx", ds.config.Container)

	_, err = ds.pool.Exec(ctx, createIndex)
	if err != nil {
		return classify(fmt.Errorf("failed to create index: %v", err), err)
	}

	return nil
}

// CreateIfAbsent writes one record, routing by partition key. A record
// that already exists in the target partition is left untouched and
// reported as seeder.ErrConflict; no upsert happens.
func (ds *DocStore) CreateIfAbsent(ctx context.Context, rec models.StorageRecord) error {
	stmt := fmt.Sprintf(`
		INSERT INTO %q (id, partition_key, title, content, category, title_vector, content_vector)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (partition_key, id) DO NOTHING`,
		ds.config.Container)

	tag, err := ds.pool.Exec(ctx, stmt,
		rec.ID,
		rec.PartitionKey,
		rec.Title,
		rec.Content,
		rec.Category,
		vectorOrNull(rec.TitleVector),
		vectorOrNull(rec.ContentVector),
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert record %s: %v", rec.ID, err), err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s in partition %s: %w", rec.ID, rec.PartitionKey, seeder.ErrConflict)
	}

	return nil
}

// Count returns the total number of records in the container, including
// documents left over from earlier runs.
func (ds *DocStore) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %q", ds.config.Container)

	if err := ds.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %v", err)
	}

	return count, nil
}

// Search runs a cosine-distance top-k query over the content vectors.
// The ranking happens entirely inside the database engine.
func (ds *DocStore) Search(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error) {
	if limit == 0 {
		limit = 5
	}

	query := fmt.Sprintf(`
		SELECT id, title, category
		FROM %q
		WHERE content_vector IS NOT NULL
		ORDER BY content_vector <=> $1
		LIMIT $2`,
		ds.config.Container)

	rows, err := ds.pool.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %v", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Category); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func (ds *DocStore) Close() {
	if ds.pool != nil {
		ds.pool.Close()
	}
}

// vectorOrNull maps an empty vector to SQL NULL; a dimension-typed
// vector column cannot hold a zero-length value.
func vectorOrNull(v []float32) any {
	if len(v) == 0 {
		return nil
	}
	return pgvector.NewVector(v)
}

// classify wraps wrapped with seeder.ErrUnauthorized when cause is an
// authorization-class database error.
func classify(wrapped, cause error) error {
	var pgErr *pgconn.PgError
	if errors.As(cause, &pgErr) && authErrorCodes[pgErr.Code] {
		return fmt.Errorf("%v: %w", wrapped, seeder.ErrUnauthorized)
	}
	return wrapped
}
