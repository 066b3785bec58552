package qa

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/accesskit/internal/testutil"
	"github.com/joshuapare/accesskit/quickaccess"
)

func TestOpenWithOptionsUsesProvidedAdapter(t *testing.T) {
	fake := testutil.NewFakeAdapter()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mgr, err := OpenWithOptions(ctx, quickaccess.Options{
		Adapter:  fake,
		Timeouts: testutil.FastTimeouts(),
	})
	require.NoError(t, err)

	_, err = mgr.Query(ctx, quickaccess.All)
	require.NoError(t, err)
	require.Equal(t, 1, fake.HandleCreations(quickaccess.OpQuery, quickaccess.All))
}
