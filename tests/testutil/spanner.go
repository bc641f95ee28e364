package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
	"github.com/light-bringer/fulfillment-service/internal/models/m_order"
	"github.com/light-bringer/fulfillment-service/internal/models/m_otp"
	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
	"github.com/light-bringer/fulfillment-service/internal/models/m_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/models/m_user"
)

// SetupSpannerTest creates a test Spanner client and returns a cleanup function.
// The test is skipped when no emulator is configured.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST is not set")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database path.
// FULFILLMENT_TEST_DATABASE overrides the default.
func GetTestSpannerDB() string {
	if db := os.Getenv("FULFILLMENT_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/fulfillment-test"
}

// CleanDatabase deletes every row of every table.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	mutations := []*spanner.Mutation{
		spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
		spanner.Delete(m_otp.TableName, spanner.AllKeys()),
		spanner.Delete(m_order.TableName, spanner.AllKeys()),
		spanner.Delete(m_testimonial.TableName, spanner.AllKeys()),
		spanner.Delete(m_user.TableName, spanner.AllKeys()),
		spanner.Delete(m_inventory.TableName, spanner.AllKeys()),
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}
	require.Equal(t, int64(expectedCount), queryCount(t, client, stmt), "unexpected row count in table %s", table)
}

func queryCount(t *testing.T, client *spanner.Client, stmt spanner.Statement) int64 {
	t.Helper()

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	return count
}
