package quickaccess_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/accesskit/internal/testutil"
	"github.com/joshuapare/accesskit/quickaccess"
)

func seedFrequent(fake *testutil.FakeAdapter) {
	fake.Seed(quickaccess.FrequentFolders,
		quickaccess.Item{Path: `C:\Users\me\Desktop`, Category: quickaccess.FrequentFolders, SystemDefault: true},
		quickaccess.Item{Path: `C:\Users\me\Downloads`, Category: quickaccess.FrequentFolders, SystemDefault: true},
		quickaccess.Item{Path: `C:\work\project`, Category: quickaccess.FrequentFolders},
		quickaccess.Item{Path: `C:\work\scratch`, Category: quickaccess.FrequentFolders},
	)
}

func TestEmptyPreservesSystemDefaults(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	seedFrequent(fake)
	mgr := testutil.NewManager(t, fake)

	require.NoError(t, mgr.EmptyItems(context.Background(), quickaccess.FrequentFolders, false, false))

	left := fake.Items(quickaccess.FrequentFolders)
	require.Len(t, left, 2)
	for _, it := range left {
		require.True(t, it.SystemDefault, "non-default item survived: %s", it.Path)
	}
}

func TestEmptyAlsoSystemDefaultClearsEverything(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	seedFrequent(fake)
	mgr := testutil.NewManager(t, fake)

	require.NoError(t, mgr.EmptyItems(context.Background(), quickaccess.FrequentFolders, false, true))
	require.Empty(t, fake.Items(quickaccess.FrequentFolders))
}

func TestEmptyAllClearsBothCategories(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	fake.Seed(quickaccess.RecentFiles,
		quickaccess.Item{Path: `C:\docs\a.txt`, Category: quickaccess.RecentFiles},
		quickaccess.Item{Path: `C:\docs\b.txt`, Category: quickaccess.RecentFiles},
	)
	fake.Seed(quickaccess.FrequentFolders,
		quickaccess.Item{Path: `C:\work\project`, Category: quickaccess.FrequentFolders},
	)
	mgr := testutil.NewManager(t, fake)

	require.NoError(t, mgr.EmptyItems(context.Background(), quickaccess.All, false, false))
	require.Empty(t, fake.Items(quickaccess.RecentFiles))
	require.Empty(t, fake.Items(quickaccess.FrequentFolders))
}

func TestEmptyForceUpdateRefreshesOnce(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	fake.Seed(quickaccess.RecentFiles,
		quickaccess.Item{Path: `C:\docs\a.txt`, Category: quickaccess.RecentFiles},
		quickaccess.Item{Path: `C:\docs\b.txt`, Category: quickaccess.RecentFiles},
		quickaccess.Item{Path: `C:\docs\c.txt`, Category: quickaccess.RecentFiles},
	)
	mgr := testutil.NewManager(t, fake)

	require.NoError(t, mgr.EmptyItems(context.Background(), quickaccess.RecentFiles, true, false))

	// One refresh for the whole batch, not one per removed item.
	require.Equal(t, 1, fake.RefreshCalls())
}

func TestEmptyPartialFailureReportsBatchError(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	fake.Seed(quickaccess.FrequentFolders,
		quickaccess.Item{Path: `C:\work\locked`, Category: quickaccess.FrequentFolders},
		quickaccess.Item{Path: `C:\work\ok`, Category: quickaccess.FrequentFolders},
	)
	fake.FailRemove = map[string]error{
		`C:\work\locked`: errors.New("sharing violation"),
	}
	mgr := testutil.NewManager(t, fake)

	err := mgr.EmptyItems(context.Background(), quickaccess.FrequentFolders, false, false)

	var be *quickaccess.BatchError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Failed, 1)
	require.Contains(t, be.Failed, `C:\work\locked`)

	// The item that succeeded stays removed.
	left := fake.Items(quickaccess.FrequentFolders)
	require.Len(t, left, 1)
	require.Equal(t, `C:\work\locked`, left[0].Path)
}

func TestEmptyOnEmptyCategoryIsNoop(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	mgr := testutil.NewManager(t, fake)

	require.NoError(t, mgr.EmptyItems(context.Background(), quickaccess.RecentFiles, false, false))
	require.Zero(t, fake.MutationCalls())
}
