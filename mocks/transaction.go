package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/repositories"
)

type Transaction struct {
	mock.Mock
}

func (t *Transaction) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	arguments := t.Called(ctx, sql, args)
	return arguments.Get(0).(pgconn.CommandTag), arguments.Error(1)
}

func (t *Transaction) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	arguments := t.Called(ctx, sql, args)
	return arguments.Get(0).(pgx.Rows), arguments.Error(1)
}

func (t *Transaction) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	arguments := t.Called(ctx, sql, args)
	return arguments.Get(0).(pgx.Row)
}

func (t *Transaction) RawTx() pgx.Tx {
	return nil
}

// TransactionFactory runs the transaction callback against a Transaction
// mock, so usecase tests can assert on what happens inside the transaction.
type TransactionFactory struct {
	mock.Mock
	Tx Transaction
}

func (f *TransactionFactory) Transaction(ctx context.Context,
	fn func(tx repositories.Transaction) error,
) error {
	args := f.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(&f.Tx)
}

// ExecutorFactory hands out the embedded Transaction mock as a plain
// executor.
type ExecutorFactory struct {
	mock.Mock
	Tx Transaction
}

func (f *ExecutorFactory) NewExecutor() repositories.Executor {
	return &f.Tx
}
