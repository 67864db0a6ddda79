package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/internal/driver"
	"github.com/leapstack-labs/sqlfmt/internal/watch"
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

func TestRunInvokesCallbackImmediatelyAndOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.sql")
	require.NoError(t, os.WriteFile(path, []byte("select * from t where a = NULL;"), 0o644))

	cfg := lint.NewConfig()
	cfg.Include = []string{"convention.is_null"}
	opts := driver.Options{Dialect: dialect.NewANSI(), Config: cfg}

	results := make(chan []driver.Result, 4)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watch.Run(ctx, []string{dir}, opts, func(r []driver.Result, err error) {
			if err == nil {
				results <- r
			}
		}, nil)
	}()

	select {
	case r := <-results:
		require.Len(t, r, 1)
		assert.NotEmpty(t, r[0].Violation)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial run")
	}

	require.NoError(t, os.WriteFile(path, []byte("select * from t where a is null;"), 0o644))

	select {
	case r := <-results:
		require.Len(t, r, 1)
		assert.Empty(t, r[0].Violation)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for re-run after change")
	}

	cancel()
	<-done
}
