// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Command afc-engine is the batch-mode CLI entry point (spec §6 "CLI
// surface"): it loads a request and configuration file, runs one of the
// analysis modes, and writes the response plus the persisted artifacts
// into --temp-dir, in the structural shape of the teacher's otns_main
// flag-struct + single Main(args) pattern.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/afcio"
	"github.com/openafc/afc-engine/afclog"
	"github.com/openafc/afc-engine/aggregate"
	"github.com/openafc/afc-engine/analysis"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/config"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/prng"
	"github.com/openafc/afc-engine/progress"
	"github.com/openafc/afc-engine/propagation"
	"github.com/openafc/afc-engine/terrain"
)

// cliArgs mirrors spec §6's CLI surface, one field per flag.
type cliArgs struct {
	RequestType    string
	StateRoot      string
	InputFilePath  string
	ConfigFilePath string
	OutputFilePath string
	TempDir        string
	LogLevel       string
}

var args cliArgs

func parseArgs() {
	flag.StringVar(&args.RequestType, "request-type", "PointAnalysis", "PointAnalysis|APAnalysis|HeatmapAnalysis|ExclusionZoneAnalysis|AP-AFC")
	flag.StringVar(&args.StateRoot, "state-root", ".", "root directory the uls/ras database paths are relative to")
	flag.StringVar(&args.InputFilePath, "input-file-path", "", "path to the request JSON")
	flag.StringVar(&args.ConfigFilePath, "config-file-path", "", "path to the YAML configuration file")
	flag.StringVar(&args.OutputFilePath, "output-file-path", "", "path to write the gzip-compressed JSON response")
	flag.StringVar(&args.TempDir, "temp-dir", ".", "directory for persisted artifacts (exc_thr, fs_anom, userInputs, results.kmz, progress.txt)")
	flag.StringVar(&args.LogLevel, "log-level", "info", "debug|info|warn|error|off")
	flag.Parse()
}

func main() {
	parseArgs()
	log := afclog.New(afclog.ParseLevel(args.LogLevel))
	defer log.Sync() //nolint:errcheck

	if err := run(log); err != nil {
		fmt.Fprintf(os.Stderr, "afc-engine: %+v\n", err)
		os.Exit(1)
	}
}

func run(log *zap.Logger) error {
	// AP-AFC and APAnalysis are the standardized-protocol and internal
	// names for the same point-style inquiry (spec §6 lists all five as
	// CLI --request-type values without a distinct schema for the latter
	// three); ExclusionZoneAnalysis and HeatmapAnalysis use the analysis
	// package's own request shapes instead of the RAT-AFC JSON request.
	switch args.RequestType {
	case "PointAnalysis", "APAnalysis", "AP-AFC", "":
		return runPointAnalysis(log)
	case "ExclusionZoneAnalysis":
		return runExclusionZoneAnalysis(log)
	case "HeatmapAnalysis":
		return runHeatmapAnalysis(log)
	default:
		return afcerr.New(afcerr.InvalidRequest, "unknown --request-type %q", args.RequestType)
	}
}

func loadConfig() (*config.Config, error) {
	if args.ConfigFilePath == "" {
		return nil, afcerr.New(afcerr.ConfigError, "--config-file-path is required")
	}
	return config.Load(args.ConfigFilePath)
}

func resolveStatePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(args.StateRoot, p)
}

func loadIncumbents(cfg *config.Config, prov *terrain.Provider, minLat, maxLat, minLon, maxLon, minFreqHz, maxFreqHz float64) (*incumbent.Set, *incumbent.RasSet, error) {
	var raw []incumbent.RawFsRecord
	if cfg.UlsDatabase != "" {
		var err error
		raw, err = afcio.LoadUlsDatabase(resolveStatePath(cfg.UlsDatabase))
		if err != nil {
			return nil, nil, err
		}
	}
	fs, err := incumbent.LoadFsWindow(raw, minLat, maxLat, minLon, maxLon, minFreqHz, maxFreqHz, prov,
		incumbent.AnomalyPolicy{FixAnomalousEntries: cfg.FixAnomalousEntries}, nil)
	if err != nil {
		return nil, nil, err
	}

	var regions []*incumbent.RasRegion
	if cfg.RasDatabase != "" {
		regions, err = afcio.LoadRasDatabase(resolveStatePath(cfg.RasDatabase))
		if err != nil {
			return nil, nil, err
		}
	}
	return fs, incumbent.LoadAll(regions), nil
}

// propagationContext builds the per-run propagation context, including the
// fixed-probability/Monte-Carlo selection (spec §9 design note). Monte-Carlo
// mode draws from prng.PropagationRNG, seeded once in run() from
// cfg.MonteCarloSeed so a run is reproducible when a nonzero seed is given.
func propagationContext(cfg *config.Config) *propagation.Context {
	ctx := &propagation.Context{
		Model:                cfg.PropagationModel,
		ClutterConfidence:    cfg.P2108Confidence,
		BuildingConfidence:   cfg.BuildingConfidence,
		ITMConfidence:        cfg.ItmConfidence,
		Win2Confidence:       cfg.Win2Confidence,
		Win2LOSThreshold:     cfg.Win2ProbLosThreshold,
		BuildingType:         cfg.BuildingType,
		FixedBuildingLossDB:  cfg.BuildingFixedValueDB,
		PolarizationLossDB:   cfg.PolarizationLossDB,
		BodyLossIndoorDB:     cfg.BodyLossIndoorDB,
		BodyLossOutdoorDB:    cfg.BodyLossOutdoorDB,
		FixedProb:            !cfg.MonteCarlo,
	}
	if cfg.MonteCarlo {
		prng.Init(cfg.MonteCarloSeed)
		ctx.RNG = prng.PropagationRNG()
	}
	return ctx
}

func newKernel(cfg *config.Config, prov *terrain.Provider, indoor bool) *analysis.Kernel {
	return &analysis.Kernel{
		Cfg:              cfg,
		PropCtx:          propagationContext(cfg),
		Env:              propagation.Suburban,
		Terrain:          prov,
		AciEnabled:       true,
		IndoorDeployment: indoor,
	}
}

func runPointAnalysis(log *zap.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args.InputFilePath)
	if err != nil {
		return afcerr.Wrap(afcerr.DataError, err, "reading input file")
	}
	var req afcio.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return afcerr.Wrap(afcerr.InvalidRequest, err, "parsing request json")
	}
	if !req.HasInquiry() {
		return afcerr.New(afcerr.InvalidRequest, "request %s carries neither inquiredChannels nor inquiredFrequencyRange", req.RequestId)
	}
	log.Info("point analysis started", zap.String("requestId", req.RequestId), zap.String("serialNumber", req.DeviceDescriptor.SerialNumber))

	region, err := req.Location.ToRegion()
	if err != nil {
		return err
	}

	prov := terrain.NewProvider(nil, 2, nil, nil, nil, nil)

	center := region.Center()
	windowM := region.MaxDist() + cfg.MaxLinkDistanceKm*1000.0
	latPad := windowM / 111320.0
	lonPad := windowM / (111320.0 * maxCos(center.LatDeg))

	fs, ras, err := loadIncumbents(cfg, prov,
		center.LatDeg-latPad, center.LatDeg+latPad, center.LonDeg-lonPad, center.LonDeg+lonPad,
		0, 7125e6)
	if err != nil {
		return err
	}

	channels, err := expandChannels(req, cfg.MaxEirpDBm)
	if err != nil {
		return err
	}

	var ranges []aggregate.FrequencyRange
	for _, fr := range req.InquiredFrequencyRange {
		ranges = append(ranges, aggregate.FrequencyRange{LowMHz: fr.LowFrequencyMHz, HighMHz: fr.HighFrequencyMHz})
		channels = append(channels, channelplan.ExpandFrequencyRange(fr.LowFrequencyMHz, fr.HighFrequencyMHz, cfg.MaxEirpDBm)...)
	}

	k := newKernel(cfg, prov, req.Location.IndoorDeployment != 0)

	tr := progress.New(nil, len(channels), func(percent int) {
		elapsed, remaining := time.Duration(0), time.Duration(0)
		_ = afcio.WriteProgressFile(filepath.Join(args.TempDir, "progress.txt"), percent, elapsed, remaining)
	})

	res, err := k.Point(analysis.PointRequest{
		Region:          region,
		TxHeightAGLM:    req.Location.HeightM,
		Channels:        channels,
		FrequencyRanges: ranges,
	}, fs, ras, tr)
	if err != nil {
		return err
	}
	if res == nil {
		return afcerr.New(afcerr.ComputationError, "request %s cancelled before completion", req.RequestId)
	}

	ir := afcio.BuildInquiryResponse(req.RequestId, res, afcio.SuccessStatus())
	resp := afcio.NewResponse([]afcio.InquiryResponse{ir})

	if args.OutputFilePath != "" {
		if err := afcio.WriteResponseGz(args.OutputFilePath, resp); err != nil {
			return err
		}
	}

	if err := afcio.WriteFsAnom(filepath.Join(args.TempDir, "fs_anom.csv.gz"), fs.Anomalies()); err != nil {
		return err
	}
	if err := afcio.WriteUserInputs(filepath.Join(args.TempDir, "userInputs.csv.gz"), userInputsMap(cfg)); err != nil {
		return err
	}

	var markers []afcio.FsConeMarker
	for _, r := range fs.All() {
		markers = append(markers, afcio.FsConeMarker{
			Name:  r.Callsign,
			Point: geodesy.LatLon{LatDeg: r.RxLatDeg, LonDeg: r.RxLonDeg, HeightM: r.RxHeightAGLM},
			Color: worstColor(channels),
		})
	}
	kmlBytes := afcio.BuildResultsKml(region.Boundary(), markers)
	if err := afcio.WriteResultsKmz(filepath.Join(args.TempDir, "results.kmz"), kmlBytes); err != nil {
		return err
	}

	log.Info("point analysis complete", zap.Int("fsCount", fs.Len()), zap.Int("channelCount", len(channels)))
	return nil
}

func expandChannels(req afcio.Request, maxEirpDBm float64) ([]channelplan.Channel, error) {
	var sets []channelplan.InquiredChannelSet
	for _, ic := range req.InquiredChannels {
		sets = append(sets, channelplan.InquiredChannelSet{OperatingClass: ic.GlobalOperatingClass, ChannelCfi: ic.ChannelCfi})
	}
	if len(sets) == 0 && len(req.InquiredFrequencyRange) > 0 {
		return nil, nil
	}
	return channelplan.ExpandInquiredChannels(sets, maxEirpDBm)
}

func worstColor(channels []channelplan.Channel) channelplan.Color {
	worst := channelplan.ColorGreen
	for _, c := range channels {
		if c.Color > worst {
			worst = c.Color
		}
	}
	return worst
}

func userInputsMap(cfg *config.Config) map[string]string {
	return map[string]string{
		"ulsDatabase":       cfg.UlsDatabase,
		"rasDatabase":       cfg.RasDatabase,
		"maxEIRP":           formatF64(cfg.MaxEirpDBm),
		"minEIRP":           formatF64(cfg.MinEirpDBm),
		"threshold":         formatF64(cfg.ThresholdDB),
		"maxLinkDistanceKm": formatF64(cfg.MaxLinkDistanceKm),
	}
}

func formatF64(v float64) string { return fmt.Sprintf("%g", v) }

// maxCos bounds the longitude-padding divisor away from zero near the
// poles, where a degree of longitude shrinks to nothing.
func maxCos(latDeg float64) float64 {
	c := math.Cos(latDeg * math.Pi / 180.0)
	if c < 0.01 {
		return 0.01
	}
	return c
}

func runExclusionZoneAnalysis(log *zap.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args.InputFilePath)
	if err != nil {
		return afcerr.Wrap(afcerr.DataError, err, "reading input file")
	}
	var doc exclusionZoneRequestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return afcerr.Wrap(afcerr.InvalidRequest, err, "parsing exclusion-zone request json")
	}
	log.Info("exclusion-zone analysis started", zap.Int("fsId", doc.FsId))

	prov := terrain.NewProvider(nil, 2, nil, nil, nil, nil)
	txPosn := geodesy.LatLon{LatDeg: doc.Center.Latitude, LonDeg: doc.Center.Longitude}
	windowM := cfg.MaxLinkDistanceKm * 1000.0
	latPad := windowM / 111320.0
	lonPad := windowM / (111320.0 * maxCos(txPosn.LatDeg))

	fs, _, err := loadIncumbents(cfg, prov, txPosn.LatDeg-latPad, txPosn.LatDeg+latPad, txPosn.LonDeg-lonPad, txPosn.LonDeg+lonPad, 0, 7125e6)
	if err != nil {
		return err
	}
	target, ok := fs.FindById(doc.FsId)
	if !ok {
		return afcerr.New(afcerr.DataError, "fs id %d not found in window", doc.FsId)
	}

	k := newKernel(cfg, prov, false)
	ch := channelplan.Channel{StartFreqMHz: doc.Channel.LowFrequencyMHz, StopFreqMHz: doc.Channel.HighFrequencyMHz}

	tr := progress.New(nil, 360, func(percent int) {
		_ = afcio.WriteProgressFile(filepath.Join(args.TempDir, "progress.txt"), percent, 0, 0)
	})

	vertices, err := k.ExclusionZone(analysis.ExclusionZoneRequest{
		TxPosn:       txPosn,
		TxHeightAGLM: doc.HeightAGLM,
		Channel:      ch,
	}, target, tr)
	if err != nil {
		return err
	}

	return writeExclusionZoneResult(vertices)
}

func writeExclusionZoneResult(vertices []analysis.ExclusionZoneVertex) error {
	if args.OutputFilePath == "" {
		return nil
	}
	type vertexOut struct {
		AzimuthDeg float64 `json:"azimuth"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		DistanceM  float64 `json:"distance"`
	}
	out := make([]vertexOut, len(vertices))
	for i, v := range vertices {
		out[i] = vertexOut{AzimuthDeg: v.AzimuthDeg, Latitude: v.Point.LatDeg, Longitude: v.Point.LonDeg, DistanceM: v.DistanceM}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return afcerr.Wrap(afcerr.ComputationError, err, "marshaling exclusion-zone vertices")
	}
	return os.WriteFile(args.OutputFilePath, data, 0o644)
}

type exclusionZoneRequestDoc struct {
	Center     afcio.LatLonPoint            `json:"center"`
	HeightAGLM float64                      `json:"heightAGL"`
	FsId       int                          `json:"fsId"`
	Channel    afcio.InquiredFrequencyRange `json:"channel"`
}

func runHeatmapAnalysis(log *zap.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args.InputFilePath)
	if err != nil {
		return afcerr.Wrap(afcerr.DataError, err, "reading input file")
	}
	var doc heatmapRequestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return afcerr.Wrap(afcerr.InvalidRequest, err, "parsing heatmap request json")
	}
	log.Info("heatmap analysis started", zap.Float64("minLat", doc.MinLatDeg), zap.Float64("maxLat", doc.MaxLatDeg))

	prov := terrain.NewProvider(nil, 2, nil, nil, nil, nil)
	fs, _, err := loadIncumbents(cfg, prov, doc.MinLatDeg, doc.MaxLatDeg, doc.MinLonDeg, doc.MaxLonDeg, 0, 7125e6)
	if err != nil {
		return err
	}

	k := newKernel(cfg, prov, doc.Indoor)
	ch := channelplan.Channel{StartFreqMHz: doc.Channel.LowFrequencyMHz, StopFreqMHz: doc.Channel.HighFrequencyMHz}

	// one progress unit per grid cell, counted the way Kernel.Heatmap lays out the grid
	latStepDeg := doc.SpacingM / geodesy.EarthRadiusMeters * 180 / math.Pi
	lonStepDeg := doc.SpacingM / (geodesy.EarthRadiusMeters * math.Cos((doc.MinLatDeg+doc.MaxLatDeg)/2*math.Pi/180)) * 180 / math.Pi
	nCells := 1
	if latStepDeg > 0 && lonStepDeg > 0 {
		nCells = (int(math.Ceil((doc.MaxLatDeg-doc.MinLatDeg)/latStepDeg)) + 1) * (int(math.Ceil((doc.MaxLonDeg-doc.MinLonDeg)/lonStepDeg)) + 1)
	}
	tr := progress.New(nil, nCells, func(percent int) {
		_ = afcio.WriteProgressFile(filepath.Join(args.TempDir, "progress.txt"), percent, 0, 0)
	})

	cells, err := k.Heatmap(analysis.HeatmapRequest{
		MinLatDeg: doc.MinLatDeg, MaxLatDeg: doc.MaxLatDeg,
		MinLonDeg: doc.MinLonDeg, MaxLonDeg: doc.MaxLonDeg,
		SpacingM:     doc.SpacingM,
		Channel:      ch,
		TxHeightAGLM: doc.HeightAGLM,
		Indoor:       doc.Indoor,
	}, fs, tr)
	if err != nil {
		return err
	}

	if args.OutputFilePath == "" {
		return nil
	}
	data, merr := json.MarshalIndent(cells, "", "  ")
	if merr != nil {
		return afcerr.Wrap(afcerr.ComputationError, merr, "marshaling heatmap cells")
	}
	return os.WriteFile(args.OutputFilePath, data, 0o644)
}

type heatmapRequestDoc struct {
	MinLatDeg  float64                      `json:"minLat"`
	MaxLatDeg  float64                      `json:"maxLat"`
	MinLonDeg  float64                      `json:"minLon"`
	MaxLonDeg  float64                      `json:"maxLon"`
	SpacingM   float64                      `json:"spacing"`
	HeightAGLM float64                      `json:"heightAGL"`
	Indoor     bool                         `json:"indoor"`
	Channel    afcio.InquiredFrequencyRange `json:"channel"`
}
