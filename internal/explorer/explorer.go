// Package explorer runs one dashboard render cycle: generate the dataset,
// build the chart, compute the metrics and, when a file was uploaded, parse
// it for display.
package explorer

import (
	"context"

	"github.com/junkd0g/dataexplorer/internal/analyzer"
	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/config"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/junkd0g/dataexplorer/internal/logger"
	"github.com/junkd0g/dataexplorer/internal/upload"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Request carries the user's selections for one render.
type Request struct {
	// Kind is the chart kind name or control panel label.
	Kind string
	// Strict rejects unknown kinds instead of falling back to scatter.
	Strict bool
	// Seed overrides the configured seed when non-nil.
	Seed *int64
	// Upload holds the raw CSV bytes of a selected file, if any.
	Upload []byte
	// UploadName is the client file name, for display only.
	UploadName string
}

// UploadView is the parsed upload shown next to the generated chart.
type UploadView struct {
	Name    string            `json:"name,omitempty"`
	Table   *upload.Table     `json:"table"`
	Profile *analyzer.Profile `json:"profile"`
}

// View is everything a presentation backend needs to draw the page.
type View struct {
	Dataset     dataset.Dataset `json:"dataset"`
	Chart       chart.Spec      `json:"chart"`
	Summary     dataset.Summary `json:"summary"`
	Upload      *UploadView     `json:"upload,omitempty"`
	UploadError string          `json:"uploadError,omitempty"`
}

// HasUpload reports whether a file was uploaded in this cycle, successfully
// or not.
func (v *View) HasUpload() bool {
	return v.Upload != nil || v.UploadError != ""
}

// Service renders views. It holds only immutable settings and is safe for
// concurrent use.
type Service struct {
	seed        int64
	defaultKind string
	maxUpload   int64
	log         *logrus.Entry
}

// Option configures a Service.
type Option func(*Service)

// WithSeed sets the seed used when a request does not carry one.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithDefaultKind sets the kind used when a request names none.
func WithDefaultKind(kind string) Option {
	return func(s *Service) {
		s.defaultKind = kind
	}
}

// WithMaxUpload limits the size of uploaded files.
func WithMaxUpload(n int64) Option {
	return func(s *Service) {
		s.maxUpload = n
	}
}

// NewService creates a Service with the given options.
func NewService(opts ...Option) *Service {
	s := &Service{
		seed:        dataset.DefaultSeed,
		defaultKind: chart.Bar.String(),
		maxUpload:   upload.DefaultMaxBytes,
		log:         logger.New("explorer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig creates a Service from the dataset, dashboard and upload
// sections of cfg.
func FromConfig(cfg *config.AppConfig) *Service {
	return NewService(
		WithSeed(cfg.Dataset.SeedValue()),
		WithDefaultKind(cfg.Dashboard.DefaultKind),
		WithMaxUpload(cfg.Upload.MaxBytes),
	)
}

// Seed returns the service's default seed.
func (s *Service) Seed() int64 {
	return s.seed
}

// Dataset generates the dataset for the request seed.
func (s *Service) Dataset(seed *int64) dataset.Dataset {
	if seed != nil {
		return dataset.Generate(*seed)
	}
	return dataset.Generate(s.seed)
}

// Render runs one render cycle. Upload failures are reported on the view and
// never fail the cycle; the only error is an unknown kind in strict mode.
func (s *Service) Render(ctx context.Context, req Request) (*View, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kindName := req.Kind
	if kindName == "" {
		kindName = s.defaultKind
	}

	ds := s.Dataset(req.Seed)

	var spec chart.Spec
	if req.Strict {
		kind, err := chart.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		spec, err = chart.Build(ds, kind)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build chart")
		}
	} else {
		spec = chart.BuildOrScatter(ds, kindName)
		if _, err := chart.ParseKind(kindName); err != nil {
			s.log.WithField("kind", kindName).Warn("unrecognised chart kind, rendering scatter")
		}
	}

	view := &View{
		Dataset: ds,
		Chart:   spec,
		Summary: dataset.Summarize(ds),
	}

	if req.Upload != nil {
		s.attachUpload(view, req)
	}

	s.log.WithFields(logrus.Fields{
		"seed":   ds.Seed,
		"kind":   spec.Type,
		"upload": view.HasUpload(),
	}).Debug("rendered view")

	return view, nil
}

// ParseUpload parses raw CSV bytes with the service's size limit.
func (s *Service) ParseUpload(data []byte) (*UploadView, error) {
	if err := upload.CheckSize(int64(len(data)), s.maxUpload); err != nil {
		return nil, err
	}
	table, err := upload.ParseCSV(data)
	if err != nil {
		return nil, err
	}
	return &UploadView{Table: table, Profile: analyzer.Analyze(table)}, nil
}

func (s *Service) attachUpload(view *View, req Request) {
	uv, err := s.ParseUpload(req.Upload)
	if err != nil {
		s.log.WithError(err).WithField("file", req.UploadName).Warn("upload rejected")
		view.UploadError = err.Error()
		return
	}
	uv.Name = req.UploadName
	view.Upload = uv
	s.log.WithFields(logrus.Fields{
		"file":    req.UploadName,
		"rows":    uv.Table.RowCount(),
		"columns": uv.Table.ColCount(),
	}).Info("file uploaded successfully")
}
