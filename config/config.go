// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package config decodes and validates the engine's YAML configuration
// file (spec component K): propagation/antenna/building model selection,
// confidences, thresholds, and EIRP bounds.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/antenna"
	"github.com/openafc/afc-engine/propagation"
)

// Region selects the region-polygon asset the engine restricts requests to
// (spec §6 "regionStr").
type Region int

const (
	RegionCONUS Region = iota
	RegionCanada
)

func parseRegion(s string) (Region, error) {
	switch s {
	case "", "CONUS":
		return RegionCONUS, nil
	case "Canada":
		return RegionCanada, nil
	default:
		return 0, afcerr.New(afcerr.ConfigError, "unknown regionStr %q", s)
	}
}

// BuildingPenetrationKind selects the building-loss source (spec §6
// buildingPenetrationLoss.kind).
type BuildingPenetrationKind int

const (
	BuildingPenetrationP2109 BuildingPenetrationKind = iota
	BuildingPenetrationFixedValue
)

// AntennaPatternKind selects the rx antenna pattern source (spec §6
// antennaPattern.kind).
type AntennaPatternKind int

const (
	AntennaPatternBuiltin AntennaPatternKind = iota
	AntennaPatternUserUpload
)

// rawConfig is the literal YAML document shape.
type rawConfig struct {
	RegionStr   string `yaml:"regionStr"`
	UlsDatabase string `yaml:"ulsDatabase"`
	RasDatabase string `yaml:"rasDatabase"`

	PropagationModel struct {
		Kind string `yaml:"kind"`
	} `yaml:"propagationModel"`

	BuildingPenetrationLoss struct {
		Kind       string  `yaml:"kind"`
		BuildingType string `yaml:"buildingType"`
		Confidence float64 `yaml:"confidence"`
		Value      float64 `yaml:"value"`
	} `yaml:"buildingPenetrationLoss"`

	AntennaPattern struct {
		Kind  string `yaml:"kind"`
		Value string `yaml:"value"`
	} `yaml:"antennaPattern"`

	MinEIRP         float64 `yaml:"minEIRP"`
	MaxEIRP         float64 `yaml:"maxEIRP"`
	Threshold       float64 `yaml:"threshold"`
	MaxLinkDistance float64 `yaml:"maxLinkDistance"`

	BodyLoss struct {
		ValueIndoor  float64 `yaml:"valueIndoor"`
		ValueOutdoor float64 `yaml:"valueOutdoor"`
	} `yaml:"bodyLoss"`

	PolarizationMismatchLoss struct {
		Value float64 `yaml:"value"`
	} `yaml:"polarizationMismatchLoss"`

	ReceiverFeederLoss float64 `yaml:"receiverFeederLoss"`

	Win2ProbLosThreshold float64 `yaml:"win2ProbLosThreshold"`
	Win2Confidence       float64 `yaml:"win2Confidence"`
	ItmConfidence        float64 `yaml:"itmConfidence"`
	P2108Confidence      float64 `yaml:"p2108Confidence"`

	FixAnomalousEntries bool `yaml:"fixAnomalousEntries"`

	MonteCarlo     bool  `yaml:"monteCarlo"`
	MonteCarloSeed int64 `yaml:"monteCarloSeed"`
}

// Config is the validated, typed effective configuration (spec §4.K).
type Config struct {
	Region      Region
	UlsDatabase string
	RasDatabase string

	PropagationModel propagation.ModelKind

	BuildingPenetrationKind BuildingPenetrationKind
	BuildingType            propagation.BuildingType
	BuildingConfidence      float64
	BuildingFixedValueDB    float64

	AntennaPatternKind  AntennaPatternKind
	AntennaPatternValue string
	BuiltinPattern      antenna.PatternKind

	MinEirpDBm         float64
	MaxEirpDBm         float64
	ThresholdDB        float64
	MaxLinkDistanceKm  float64
	BodyLossIndoorDB   float64
	BodyLossOutdoorDB  float64
	PolarizationLossDB float64
	ReceiverFeederLossDB float64

	Win2ProbLosThreshold float64
	Win2Confidence       float64
	ItmConfidence        float64
	P2108Confidence      float64

	FixAnomalousEntries bool

	MonteCarlo     bool
	MonteCarloSeed int64
}

func parsePropagationModel(s string) (propagation.ModelKind, error) {
	switch s {
	case "FSPL":
		return propagation.FSPL, nil
	case "ITM-only":
		return propagation.ITMOnly, nil
	case "ITM+building":
		return propagation.ITMBuilding, nil
	case "FCC-6GHz-R&O", "":
		return propagation.FCC6GHzRO, nil
	default:
		return 0, afcerr.New(afcerr.ConfigError, "unknown propagationModel.kind %q", s)
	}
}

func parseBuildingType(s string) propagation.BuildingType {
	switch s {
	case "traditional":
		return propagation.BuildingTraditional
	case "thermal-efficient":
		return propagation.BuildingThermalEfficient
	case "fixed":
		return propagation.BuildingFixedValue
	default:
		return propagation.BuildingNone
	}
}

func parseBuiltinAntennaPattern(s string) antenna.PatternKind {
	switch s {
	case "F.1245":
		return antenna.PatternF1245
	case "F.1336-omni":
		return antenna.PatternF1336Omni
	case "tabulated":
		return antenna.PatternTabulated
	default:
		return antenna.PatternOmni
	}
}

// Load reads and validates the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, afcerr.Wrap(afcerr.DataError, err, "reading config file")
	}
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, afcerr.Wrap(afcerr.ConfigError, err, "parsing config yaml")
	}
	return fromRaw(raw)
}

func fromRaw(raw rawConfig) (*Config, error) {
	region, err := parseRegion(raw.RegionStr)
	if err != nil {
		return nil, err
	}
	model, err := parsePropagationModel(raw.PropagationModel.Kind)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Region:               region,
		UlsDatabase:          raw.UlsDatabase,
		RasDatabase:          raw.RasDatabase,
		PropagationModel:     model,
		BuildingType:         parseBuildingType(raw.BuildingPenetrationLoss.BuildingType),
		BuildingConfidence:   raw.BuildingPenetrationLoss.Confidence,
		BuildingFixedValueDB: raw.BuildingPenetrationLoss.Value,
		AntennaPatternValue:  raw.AntennaPattern.Value,
		BuiltinPattern:       parseBuiltinAntennaPattern(raw.AntennaPattern.Value),
		MinEirpDBm:           raw.MinEIRP,
		MaxEirpDBm:           raw.MaxEIRP,
		ThresholdDB:          raw.Threshold,
		MaxLinkDistanceKm:    raw.MaxLinkDistance,
		BodyLossIndoorDB:     raw.BodyLoss.ValueIndoor,
		BodyLossOutdoorDB:    raw.BodyLoss.ValueOutdoor,
		PolarizationLossDB:   raw.PolarizationMismatchLoss.Value,
		ReceiverFeederLossDB: raw.ReceiverFeederLoss,
		Win2ProbLosThreshold: raw.Win2ProbLosThreshold,
		Win2Confidence:       raw.Win2Confidence,
		ItmConfidence:        raw.ItmConfidence,
		P2108Confidence:      raw.P2108Confidence,
		FixAnomalousEntries:  raw.FixAnomalousEntries,
		MonteCarlo:           raw.MonteCarlo,
		MonteCarloSeed:       raw.MonteCarloSeed,
	}

	switch raw.BuildingPenetrationLoss.Kind {
	case "ITU-R Rec. P.2109", "":
		cfg.BuildingPenetrationKind = BuildingPenetrationP2109
	case "Fixed Value":
		cfg.BuildingPenetrationKind = BuildingPenetrationFixedValue
	default:
		return nil, afcerr.New(afcerr.ConfigError, "unknown buildingPenetrationLoss.kind %q", raw.BuildingPenetrationLoss.Kind)
	}

	switch raw.AntennaPattern.Kind {
	case "User Upload":
		cfg.AntennaPatternKind = AntennaPatternUserUpload
	case "", "Builtin":
		cfg.AntennaPatternKind = AntennaPatternBuiltin
	default:
		return nil, afcerr.New(afcerr.ConfigError, "unknown antennaPattern.kind %q", raw.AntennaPattern.Kind)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric and cross-field invariants spec §4.K implies:
// confidences in [0,1], min <= max EIRP, positive link distance.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"buildingPenetrationLoss.confidence": c.BuildingConfidence,
		"win2Confidence":                     c.Win2Confidence,
		"itmConfidence":                      c.ItmConfidence,
		"p2108Confidence":                    c.P2108Confidence,
	} {
		if v < 0 || v > 1 {
			return afcerr.New(afcerr.ConfigError, "%s = %v out of [0,1]", name, v)
		}
	}
	if c.MinEirpDBm > c.MaxEirpDBm {
		return afcerr.New(afcerr.ConfigError, "minEIRP (%v) > maxEIRP (%v)", c.MinEirpDBm, c.MaxEirpDBm)
	}
	if c.MaxLinkDistanceKm <= 0 {
		return afcerr.New(afcerr.ConfigError, "maxLinkDistance must be positive, got %v", c.MaxLinkDistanceKm)
	}
	return nil
}
