package consumer

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// transientClasses are the SQLSTATE classes worth retrying: connection
// exceptions (08), insufficient resources (53), operator intervention (57)
// and transaction rollbacks such as serialization failures and deadlocks
// (40). Constraint and syntax classes stay permanent so a poison message
// cannot loop forever.
var transientClasses = map[string]bool{
	"08": true,
	"53": true,
	"57": true,
	"40": true,
}

// isTransient reports whether err looks like recoverable infrastructure
// trouble rather than a bad message.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) >= 2 && transientClasses[pgErr.Code[:2]]
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
