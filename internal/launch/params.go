package launch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is matched by every *FieldError.
var ErrInvalid = errors.New("invalid input")

// FieldError names the launch parameter that is missing or out of domain.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Field names used in error reports and API payloads.
const (
	FieldPayloadMass = "payload_mass"
	FieldOrbit       = "orbit"
	FieldLaunchSite  = "launch_site"
	FieldGridFins    = "grid_fins"
	FieldReused      = "reused"
	FieldLegs        = "legs"
	FieldBlock       = "block"
	FieldReusedCount = "reused_count"
	FieldYear        = "year"
	FieldMonth       = "month"
)

const (
	MinYear = 2010
	MaxYear = 2030
)

type Orbit string

const (
	OrbitLEO  Orbit = "LEO"
	OrbitGTO  Orbit = "GTO"
	OrbitISS  Orbit = "ISS"
	OrbitVLEO Orbit = "VLEO"
	OrbitSSO  Orbit = "SSO"
	OrbitMEO  Orbit = "MEO"
	OrbitHEO  Orbit = "HEO"
	OrbitPO   Orbit = "PO"
)

var Orbits = []Orbit{OrbitLEO, OrbitGTO, OrbitISS, OrbitVLEO, OrbitSSO, OrbitMEO, OrbitHEO, OrbitPO}

func (o Orbit) Valid() bool {
	for _, known := range Orbits {
		if o == known {
			return true
		}
	}
	return false
}

type Site string

const (
	SiteCCAFSSLC40 Site = "CCAFS SLC 40"
	SiteVAFBSLC4E  Site = "VAFB SLC 4E"
	SiteKSCLC39A   Site = "KSC LC 39A"
	SiteCCAFSLC40  Site = "CCAFS LC 40"
)

var Sites = []Site{SiteCCAFSSLC40, SiteVAFBSLC4E, SiteKSCLC39A, SiteCCAFSLC40}

func (s Site) Valid() bool {
	for _, known := range Sites {
		if s == known {
			return true
		}
	}
	return false
}

// Block is the booster block version, e.g. 5.0.
type Block float64

var Blocks = []Block{1, 2, 3, 4, 5}

func (b Block) Valid() bool {
	for _, known := range Blocks {
		if b == known {
			return true
		}
	}
	return false
}

func (b Block) String() string {
	return strconv.FormatFloat(float64(b), 'f', 1, 64)
}

// ParseBlock accepts "5", "5.0" or "B5".
func ParseBlock(raw string) (Block, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "B"), "b")
	if s == "" {
		return 0, invalid(FieldBlock, "required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid(FieldBlock, "not a number: %q", raw)
	}
	b := Block(v)
	if !b.Valid() {
		return 0, invalid(FieldBlock, "unknown block version %q", raw)
	}
	return b, nil
}

// Parameters is one launch configuration to score.
type Parameters struct {
	PayloadMass float64
	Orbit       Orbit
	LaunchSite  Site
	GridFins    bool
	Reused      bool
	Legs        bool
	Block       Block
	ReusedCount int
	Year        int
	Month       int
}

// Validate reports the first field outside its domain.
func (p Parameters) Validate() error {
	if math.IsNaN(p.PayloadMass) || math.IsInf(p.PayloadMass, 0) {
		return invalid(FieldPayloadMass, "must be a finite number")
	}
	if p.PayloadMass <= 0 {
		return invalid(FieldPayloadMass, "must be positive, got %v", p.PayloadMass)
	}
	if p.Orbit == "" {
		return invalid(FieldOrbit, "required")
	}
	if !p.Orbit.Valid() {
		return invalid(FieldOrbit, "unknown orbit %q", string(p.Orbit))
	}
	if p.LaunchSite == "" {
		return invalid(FieldLaunchSite, "required")
	}
	if !p.LaunchSite.Valid() {
		return invalid(FieldLaunchSite, "unknown launch site %q", string(p.LaunchSite))
	}
	if !p.Block.Valid() {
		return invalid(FieldBlock, "unknown block version %s", p.Block)
	}
	if p.ReusedCount < 0 {
		return invalid(FieldReusedCount, "must be non-negative, got %d", p.ReusedCount)
	}
	if p.Year < MinYear || p.Year > MaxYear {
		return invalid(FieldYear, "must be within %d..%d, got %d", MinYear, MaxYear, p.Year)
	}
	if p.Month < 1 || p.Month > 12 {
		return invalid(FieldMonth, "must be within 1..12, got %d", p.Month)
	}
	return nil
}

// Domains lists the accepted values for every enumerated field.
type Domains struct {
	Orbits  []string `json:"orbits"`
	Sites   []string `json:"launch_sites"`
	Blocks  []string `json:"blocks"`
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
}

func AcceptedDomains() Domains {
	d := Domains{MinYear: MinYear, MaxYear: MaxYear}
	for _, o := range Orbits {
		d.Orbits = append(d.Orbits, string(o))
	}
	for _, s := range Sites {
		d.Sites = append(d.Sites, string(s))
	}
	for _, b := range Blocks {
		d.Blocks = append(d.Blocks, b.String())
	}
	return d
}
