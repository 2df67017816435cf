package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/schetovod/webclient/internal/models"
	"github.com/schetovod/webclient/mocks"
)

func newEntitlements(t *testing.T) (*Entitlements, *mocks.MockAPI) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockAPI(ctrl)

	return NewEntitlements(api, nil), api
}

func limit(v int64) *int64 { return &v }

func expectUsage(api *mocks.MockAPI, snap models.EntitlementSnapshot, err error) *gomock.Call {
	return api.EXPECT().
		Get(gomock.Any(), "/subscriptions/me/usage", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out any) error {
			if err != nil {
				return err
			}
			*out.(*models.EntitlementSnapshot) = snap
			return nil
		})
}

func TestRefetch_ReplacesSnapshotWholesale(t *testing.T) {
	t.Parallel()

	ent, api := newEntitlements(t)
	ctx := context.Background()

	expectUsage(api, models.EntitlementSnapshot{
		Limits: models.Limits{MaxClients: limit(10), MaxDocuments: limit(0)},
		Usage:  models.Usage{Clients: 3},
	}, nil)

	require.Nil(t, ent.Snapshot())
	require.NoError(t, ent.Refetch(ctx))

	snap := ent.Snapshot()
	require.NotNil(t, snap)
	require.Equal(t, int64(10), snap.Limits.ForFeature(models.FeatureClients))
	require.Equal(t, int64(3), snap.Usage.Clients)

	// Повторный Refetch заменяет снапшот целиком, без мерджа.
	expectUsage(api, models.EntitlementSnapshot{
		Limits: models.Limits{MaxClients: limit(20)},
	}, nil)

	require.NoError(t, ent.Refetch(ctx))

	snap = ent.Snapshot()
	require.Equal(t, int64(20), snap.Limits.ForFeature(models.FeatureClients))
	require.Equal(t, models.LimitUnlimited, snap.Limits.ForFeature(models.FeatureDocuments))
	require.Zero(t, snap.Usage.Clients)
}

// Ошибка сети оставляет предыдущий снапшот на месте.
func TestRefetch_Failure_KeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	ent, api := newEntitlements(t)
	ctx := context.Background()

	expectUsage(api, models.EntitlementSnapshot{
		Limits: models.Limits{MaxClients: limit(5)},
	}, nil)
	require.NoError(t, ent.Refetch(ctx))

	expectUsage(api, models.EntitlementSnapshot{}, errors.New("backend down"))
	require.Error(t, ent.Refetch(ctx))

	snap := ent.Snapshot()
	require.NotNil(t, snap)
	require.Equal(t, int64(5), snap.Limits.ForFeature(models.FeatureClients))
	require.False(t, ent.Loading())
}

// Фича заблокирована тогда и только тогда, когда лимит равен ровно 0.
func TestIsFeatureBlocked_Boundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		limits  models.Limits
		feature models.Feature
		blocked bool
	}{
		{name: "zero blocks", limits: models.Limits{MaxClients: limit(0)}, feature: models.FeatureClients, blocked: true},
		{name: "positive allows", limits: models.Limits{MaxClients: limit(1)}, feature: models.FeatureClients, blocked: false},
		{name: "unlimited allows", limits: models.Limits{MaxDocuments: limit(-1)}, feature: models.FeatureDocuments, blocked: false},
		{name: "absent allows", limits: models.Limits{}, feature: models.FeaturePayments, blocked: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ent, api := newEntitlements(t)
			expectUsage(api, models.EntitlementSnapshot{Limits: tc.limits}, nil)
			require.NoError(t, ent.Refetch(context.Background()))

			require.Equal(t, tc.blocked, ent.IsFeatureBlocked(tc.feature))
			require.Equal(t, !tc.blocked, ent.HasFeatureAccess(tc.feature))
		})
	}
}

// Без снапшота блокировки нет: «нет информации — не блокировать».
func TestIsFeatureBlocked_NoSnapshot_NeverBlocks(t *testing.T) {
	t.Parallel()

	ent, _ := newEntitlements(t)

	require.Nil(t, ent.Snapshot())
	require.False(t, ent.Loading())
	require.False(t, ent.IsFeatureBlocked(models.FeatureClients))
	require.True(t, ent.HasFeatureAccess(models.FeatureClients))
}
