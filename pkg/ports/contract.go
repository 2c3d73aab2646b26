package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a standard suite of tests against a ReportStore implementation.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:       id,
			Machine:  "a-plus",
			Input:    "aa",
			MaxDepth: 10,
			Verdict:  domain.VerdictAccept,
			Steps:    3,
			Path: []domain.PathRow{
				{Left: "", State: "q0", Head: "a", Right: "a"},
				{Left: "aa_", State: "qacc", Head: "_", Right: ""},
			},
			TotalConfigurations:   4,
			Depth:                 3,
			AverageNondeterminism: 1,
			CreatedAt:             time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.Verdict, loaded.Verdict)
		assert.Equal(t, report.Steps, loaded.Steps)
		assert.Equal(t, report.Path, loaded.Path)
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newReport(reportID))
		require.NoError(t, err)

		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, reportID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		_ = store.Save(ctx, newReport(id1))
		_ = store.Save(ctx, newReport(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		reports, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, reports, id1)
		assert.Contains(t, reports, id2)
	})
}
