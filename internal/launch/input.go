package launch

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// BlockInput accepts a block version written either as a JSON string
// ("5.0") or as a number (5).
type BlockInput string

func (b *BlockInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BlockInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return invalid(FieldBlock, "must be a string or number")
	}
	*b = BlockInput(n.String())
	return nil
}

// Input is a loosely typed parameter set as it arrives from a caller. Every
// field is required; a nil field is reported by name.
type Input struct {
	PayloadMass *float64    `json:"payload_mass"`
	Orbit       *string     `json:"orbit"`
	LaunchSite  *string     `json:"launch_site"`
	GridFins    *bool       `json:"grid_fins"`
	Reused      *bool       `json:"reused"`
	Legs        *bool       `json:"legs"`
	Block       *BlockInput `json:"block"`
	ReusedCount *int        `json:"reused_count"`
	Year        *int        `json:"year"`
	Month       *int        `json:"month"`
}

// Parameters converts the input and validates it.
func (in Input) Parameters() (Parameters, error) {
	var p Parameters
	switch {
	case in.PayloadMass == nil:
		return p, invalid(FieldPayloadMass, "required")
	case in.Orbit == nil:
		return p, invalid(FieldOrbit, "required")
	case in.LaunchSite == nil:
		return p, invalid(FieldLaunchSite, "required")
	case in.GridFins == nil:
		return p, invalid(FieldGridFins, "required")
	case in.Reused == nil:
		return p, invalid(FieldReused, "required")
	case in.Legs == nil:
		return p, invalid(FieldLegs, "required")
	case in.Block == nil:
		return p, invalid(FieldBlock, "required")
	case in.ReusedCount == nil:
		return p, invalid(FieldReusedCount, "required")
	case in.Year == nil:
		return p, invalid(FieldYear, "required")
	case in.Month == nil:
		return p, invalid(FieldMonth, "required")
	}

	block, err := ParseBlock(string(*in.Block))
	if err != nil {
		return p, err
	}
	p = Parameters{
		PayloadMass: *in.PayloadMass,
		Orbit:       Orbit(strings.TrimSpace(*in.Orbit)),
		LaunchSite:  Site(strings.TrimSpace(*in.LaunchSite)),
		GridFins:    *in.GridFins,
		Reused:      *in.Reused,
		Legs:        *in.Legs,
		Block:       block,
		ReusedCount: *in.ReusedCount,
		Year:        *in.Year,
		Month:       *in.Month,
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// DecodeFieldError reports the field a JSON decode error points at. Syntax
// errors and empty bodies carry no field and return false.
func DecodeFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return invalid(ute.Field, "wrong type: got %s", ute.Value), true
	}
	return nil, false
}
