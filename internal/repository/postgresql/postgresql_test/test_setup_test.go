package postgresql_test

import (
	"context"
	"testing"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// txContext opens a transaction that is rolled back when the test ends.
// Repositories called with the returned context run inside it.
func txContext(t *testing.T) context.Context {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	tx, err := testDB.BeginTx(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return postgresql.ContextWithTx(ctx, tx)
}

// createTestBranch inserts a company with one branch and returns both ids.
func createTestBranch(t *testing.T, ctx context.Context) (string, string) {
	t.Helper()

	c, err := postgresql.NewCompanyRepository(testDB).Create(ctx, company.Company{Name: "Test Company", Country: "Turkiye"})
	require.NoError(t, err)

	b, err := postgresql.NewBranchRepository(testDB).Create(ctx, branch.Branch{CompanyID: c.ID, Name: "Kadikoy"})
	require.NoError(t, err)

	return c.ID, b.ID
}
