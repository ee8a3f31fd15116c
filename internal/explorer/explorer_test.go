package explorer

import (
	"context"
	"strings"
	"testing"

	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/config"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaults(t *testing.T) {
	svc := NewService()

	view, err := svc.Render(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, dataset.Generate(dataset.DefaultSeed), view.Dataset)
	assert.Equal(t, chart.Bar, view.Chart.Kind)
	assert.Equal(t, dataset.Summarize(view.Dataset), view.Summary)
	assert.False(t, view.HasUpload())
}

func TestRenderSeed(t *testing.T) {
	svc := NewService(WithSeed(7))

	view, err := svc.Render(context.Background(), Request{Kind: "pie"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), view.Dataset.Seed)

	override := int64(99)
	view, err = svc.Render(context.Background(), Request{Kind: "pie", Seed: &override})
	require.NoError(t, err)
	assert.Equal(t, int64(99), view.Dataset.Seed)
}

func TestRenderUnknownKind(t *testing.T) {
	svc := NewService()

	view, err := svc.Render(context.Background(), Request{Kind: "donut"})
	require.NoError(t, err)
	assert.Equal(t, chart.Scatter, view.Chart.Kind)

	_, err = svc.Render(context.Background(), Request{Kind: "donut", Strict: true})
	require.Error(t, err)
	assert.Equal(t, chart.ErrUnknownKind, errors.Cause(err))
}

func TestRenderWithUpload(t *testing.T) {
	svc := NewService(WithDefaultKind("scatter"))

	view, err := svc.Render(context.Background(), Request{
		Upload:     []byte("a,b\n1,2\n3,4"),
		UploadName: "data.csv",
	})
	require.NoError(t, err)
	require.NotNil(t, view.Upload)

	assert.Equal(t, chart.Scatter, view.Chart.Kind)
	assert.Equal(t, "data.csv", view.Upload.Name)
	assert.Equal(t, 2, view.Upload.Table.RowCount())
	assert.Equal(t, 2, view.Upload.Table.ColCount())
	assert.Len(t, view.Upload.Profile.Columns, 2)
	assert.Empty(t, view.UploadError)
}

func TestRenderUploadFailureKeepsChart(t *testing.T) {
	svc := NewService()

	view, err := svc.Render(context.Background(), Request{Kind: "bar", Upload: []byte("a,b\n\"1,2\n")})
	require.NoError(t, err)

	assert.Nil(t, view.Upload)
	assert.True(t, view.HasUpload())
	assert.True(t, strings.HasPrefix(view.UploadError, "Error processing file:"))
	assert.Equal(t, chart.Bar, view.Chart.Kind)
	assert.Equal(t, 5, view.Dataset.Len())
}

func TestRenderUploadTooLarge(t *testing.T) {
	svc := NewService(WithMaxUpload(3))

	view, err := svc.Render(context.Background(), Request{Upload: []byte("a,b\n1,2\n")})
	require.NoError(t, err)
	assert.Contains(t, view.UploadError, "upload size limit")
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService().Render(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig(t *testing.T) {
	seed := int64(99)
	cfg := config.Default()
	cfg.Dataset.Seed = &seed
	cfg.Dashboard.DefaultKind = "scatter"
	cfg.Upload.MaxBytes = 4

	svc := FromConfig(cfg)
	assert.Equal(t, int64(99), svc.Seed())

	view, err := svc.Render(context.Background(), Request{Upload: []byte("a,b\n1,2\n")})
	require.NoError(t, err)
	assert.Equal(t, chart.Scatter, view.Chart.Kind)
	assert.Equal(t, int64(99), view.Dataset.Seed)
	assert.NotEmpty(t, view.UploadError)
}
