// Package runid generates the identifier that tags one invocation of the
// linter, used to correlate a batch of violations in internal/history.
package runid

import "github.com/google/uuid"

// New returns a fresh run id.
func New() string {
	return uuid.NewString()
}
