package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/easybank/internal/domain"
	"github.com/iho/easybank/internal/usecase"
)

const transactionColumns = `transaction_id, source_account_number, destination_account_number, amount, currency, transaction_type, status, description, created_at, updated_at`

const saveTransactionSQL = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (transaction_id) DO UPDATE
	SET status = EXCLUDED.status,
	    description = EXCLUDED.description,
	    updated_at = EXCLUDED.updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Save upserts a transaction record using the pool's own connection. The
// engine uses this path for RETRYING and FAILED writes that must survive a
// rolled-back transfer transaction.
func (r *TransactionRepository) Save(ctx context.Context, txn *domain.Transaction) error {
	_, err := r.pool.Exec(ctx, saveTransactionSQL, saveArgs(txn)...)
	return err
}

// SaveTx upserts a transaction record inside tx.
func (r *TransactionRepository) SaveTx(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, saveTransactionSQL, saveArgs(txn)...)
	return err
}

// FindTerminalByAccountNumber returns the COMPLETED and FAILED transactions
// touching the account, newest first.
func (r *TransactionRepository) FindTerminalByAccountNumber(ctx context.Context, number string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE (source_account_number = $1 OR destination_account_number = $1)
		  AND status IN ($2, $3)
		ORDER BY created_at DESC`,
		number, string(domain.TransactionCompleted), string(domain.TransactionFailed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// FindByStatus returns all transactions in the given status, oldest first.
func (r *TransactionRepository) FindByStatus(ctx context.Context, status domain.TransactionStatus) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE status = $1
		ORDER BY created_at ASC`,
		string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func saveArgs(txn *domain.Transaction) []any {
	return []any{
		txn.TransactionID,
		txn.SourceAccountNumber,
		txn.DestinationAccountNumber,
		decimalToNumeric(txn.Amount),
		txn.Currency,
		string(txn.Type),
		string(txn.Status),
		txn.Description,
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	}
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction

	for rows.Next() {
		var (
			txn       domain.Transaction
			amount    pgtype.Numeric
			txnType   string
			status    string
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&txn.TransactionID,
			&txn.SourceAccountNumber,
			&txn.DestinationAccountNumber,
			&amount,
			&txn.Currency,
			&txnType,
			&status,
			&txn.Description,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		txn.Amount = numericToDecimal(amount)
		txn.Type = domain.TransactionType(txnType)
		txn.Status = domain.TransactionStatus(status)
		txn.CreatedAt = createdAt.Time
		txn.UpdatedAt = updatedAt.Time

		transactions = append(transactions, &txn)
	}

	return transactions, rows.Err()
}
