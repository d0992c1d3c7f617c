package spectrum

import (
	"context"
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-sync/internal/domain"
)

// stubResolver is a stateless, race-free resolver for concurrent tests.
type stubResolver struct {
	columns string
	failOn  string
}

func (s stubResolver) FromDataset(arrow.Record) (string, error) {
	return s.columns, nil
}

func (s stubResolver) FromRegistry(_ context.Context, stream string) (string, error) {
	if s.failOn != "" && stream == s.failOn {
		return "", domain.ErrNotFound("no table %q in registry", stream)
	}
	return s.columns, nil
}

// countingConnection is a mutex-guarded connection for concurrent tests.
type countingConnection struct {
	mu      sync.Mutex
	queries int
	execs   int
}

func (c *countingConnection) Query(context.Context, string) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries++
	return nil, nil
}

func (c *countingConnection) Exec(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs++
	return nil
}

func batchRequests(tables ...string) []domain.SyncRequest {
	reqs := make([]domain.SyncRequest, len(tables))
	for i, table := range tables {
		reqs[i] = domain.SyncRequest{
			Identity:  domain.TableIdentity{Schema: "analytics", Table: table},
			Bucket:    "data-lake",
			Partition: domain.PartitionSpec{Enabled: true, Value: "2024-01-15"},
		}
	}
	return reqs
}

func TestService_SyncAll_ResultsInRequestOrder(t *testing.T) {
	conn := &countingConnection{}
	svc := NewService(Deps{Resolver: stubResolver{columns: "event_id BIGINT"}, Conn: conn})

	results, err := svc.SyncAll(context.Background(), batchRequests("events", "page_views", "orders"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "s3://data-lake/events/ext=parquet/", results[0].Location)
	assert.Equal(t, "s3://data-lake/page_views/ext=parquet/", results[1].Location)
	assert.Equal(t, "s3://data-lake/orders/ext=parquet/", results[2].Location)
	for _, res := range results {
		assert.True(t, res.Created)
		assert.True(t, res.PartitionAdded)
	}

	// One probe, one create batch, and one partition per table.
	assert.Equal(t, 3, conn.queries)
	assert.Equal(t, 6, conn.execs)
}

func TestService_SyncAll_FailureWrapsTableName(t *testing.T) {
	svc := NewService(Deps{
		Resolver: stubResolver{columns: "event_id BIGINT", failOn: "orders"},
		Conn:     &countingConnection{},
	})

	results, err := svc.SyncAll(context.Background(), batchRequests("events", "orders"))
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "sync analytics.orders")

	var schemaErr *domain.SchemaUnavailableError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestService_SyncAll_Empty(t *testing.T) {
	svc := NewService(Deps{Resolver: stubResolver{columns: "event_id BIGINT"}})

	results, err := svc.SyncAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
