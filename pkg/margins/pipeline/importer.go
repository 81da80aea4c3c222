package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/komsit37/margins/pkg/margins/mapper"
	"github.com/komsit37/margins/pkg/margins/margin"
	"github.com/komsit37/margins/pkg/margins/source"
	"github.com/komsit37/margins/pkg/margins/store"
	"github.com/komsit37/margins/pkg/margins/types"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrTooManyProducts = errors.New("too many products")
	ErrNoProducts      = errors.New("no products found in file")
	ErrRateLimited     = errors.New("imports too frequent, try again shortly")
	ErrTooManyAnalyses = errors.New("too many saved analyses")
)

// Limits bounds a single import.
type Limits struct {
	MaxFileBytes int64
	MaxProducts  int
	MaxAnalyses  int
	// MinInterval is the minimum time between two imports.
	MinInterval time.Duration
	// StoreBytes caps the estimated stored size of one analysis (serialized size x2).
	StoreBytes int64
	Workers    int
}

// DefaultLimits mirrors the configuration defaults.
var DefaultLimits = Limits{
	MaxFileBytes: 5 << 20,
	MaxProducts:  1000,
	MaxAnalyses:  50,
	MinInterval:  2 * time.Second,
	StoreBytes:   4 << 20,
	Workers:      4,
}

// Request is one file to import.
type Request struct {
	FileName string
	// Name of the analysis; defaults to FileName without its extension.
	Name string
	Data io.Reader
	// Size in bytes if known, else 0.
	Size int64
}

// Importer turns uploaded spreadsheets into stored analyses.
type Importer struct {
	Store  store.Store
	Limits Limits
	Table  mapper.Table
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string

	limiter *rate.Limiter
}

func NewImporter(s store.Store, limits Limits, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	var limiter *rate.Limiter
	if limits.MinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(limits.MinInterval), 1)
	}
	return &Importer{
		Store:   s,
		Limits:  limits,
		Table:   mapper.DefaultTable(),
		Logger:  logger.With("component", "importer"),
		Now:     time.Now,
		NewID:   uuid.NewString,
		limiter: limiter,
	}
}

// Parse decodes and normalizes a file without storing it.
func (im *Importer) Parse(ctx context.Context, req Request) ([]types.Product, error) {
	dec, err := source.ForFile(req.FileName)
	if err != nil {
		return nil, err
	}
	if req.Size > 0 && im.Limits.MaxFileBytes > 0 && req.Size > im.Limits.MaxFileBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, req.Size, im.Limits.MaxFileBytes)
	}
	data := req.Data
	if im.Limits.MaxFileBytes > 0 {
		buf, err := io.ReadAll(io.LimitReader(req.Data, im.Limits.MaxFileBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", req.FileName, err)
		}
		if int64(len(buf)) > im.Limits.MaxFileBytes {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrFileTooLarge, im.Limits.MaxFileBytes)
		}
		data = bytes.NewReader(buf)
	}

	rows, err := dec.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	switch {
	case len(rows) == 0:
		return nil, ErrNoProducts
	case im.Limits.MaxProducts > 0 && len(rows) > im.Limits.MaxProducts:
		return nil, fmt.Errorf("%w: %d, limit %d", ErrTooManyProducts, len(rows), im.Limits.MaxProducts)
	}
	return NormalizeRows(ctx, rows, im.table(), im.Limits.Workers)
}

// Import parses req and stores it as a new analysis. An import less than
// MinInterval after the previous one is rejected with ErrRateLimited, both within
// this process and against the newest stored analysis.
func (im *Importer) Import(ctx context.Context, req Request) (*types.MarginAnalysis, error) {
	log := im.Logger.With("file", req.FileName)
	if im.limiter != nil && !im.limiter.Allow() {
		log.Warn("import rejected", "reason", "rate limited")
		return nil, ErrRateLimited
	}
	existing, err := im.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if im.Limits.MinInterval > 0 && len(existing) > 0 {
		if since := im.Now().Sub(existing[0].CreatedAt); since >= 0 && since < im.Limits.MinInterval {
			log.Warn("import rejected", "reason", "rate limited", "since_last", since)
			return nil, ErrRateLimited
		}
	}

	products, err := im.Parse(ctx, req)
	if err != nil {
		log.Warn("import failed", "error", err)
		return nil, err
	}
	if im.Limits.MaxAnalyses > 0 && len(existing) >= im.Limits.MaxAnalyses {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyAnalyses, im.Limits.MaxAnalyses)
	}

	a := types.MarginAnalysis{
		ID:        im.NewID(),
		Name:      DefaultName(req.Name, req.FileName),
		FileName:  req.FileName,
		CreatedAt: im.Now().UTC(),
		Products:  products,
		Summary:   margin.Summarize(products),
	}

	if im.Limits.StoreBytes > 0 {
		data, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("encode analysis: %w", err)
		}
		if est := int64(len(data)) * 2; est > im.Limits.StoreBytes {
			log.Warn("import rejected", "reason", "storage full", "estimated_bytes", est)
			return nil, fmt.Errorf("%w: analysis needs about %d bytes, limit %d", store.ErrQuota, est, im.Limits.StoreBytes)
		}
	}

	if err := im.Store.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Info("analysis imported",
		"id", a.ID,
		"products", a.Summary.TotalProducts,
		"avg_margin", a.Summary.AvgMargin,
	)
	return &a, nil
}

func (im *Importer) table() mapper.Table {
	if im.Table == nil {
		return mapper.DefaultTable()
	}
	return im.Table
}

// DefaultName returns name, or the base file name without a .xlsx/.csv extension.
func DefaultName(name, fileName string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	base := filepath.Base(fileName)
	ext := filepath.Ext(base)
	if strings.EqualFold(ext, ".xlsx") || strings.EqualFold(ext, ".csv") {
		if trimmed := strings.TrimSuffix(base, ext); trimmed != "" {
			return trimmed
		}
	}
	return base
}
