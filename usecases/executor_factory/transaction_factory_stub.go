package executor_factory

import (
	"context"

	"github.com/momconnect/hub/repositories"

	"github.com/jackc/pgx/v5"
)

type TransactionFactoryStub struct {
	ExecutorFactoryStub
}

func NewTransactionFactoryStub(stub ExecutorFactoryStub) TransactionFactoryStub {
	return TransactionFactoryStub{ExecutorFactoryStub: stub}
}

type pgTransactionStub struct {
	PgExecutorStub
}

func (stub pgTransactionStub) RawTx() pgx.Tx {
	return nil
}

func (stub TransactionFactoryStub) Transaction(ctx context.Context,
	fn func(tx repositories.Transaction) error,
) error {
	return fn(pgTransactionStub{PgExecutorStub{stub.Mock}})
}
