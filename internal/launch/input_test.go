package launch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const referenceJSON = `{
	"payload_mass": 5000,
	"orbit": "LEO",
	"launch_site": "CCAFS SLC 40",
	"grid_fins": true,
	"reused": true,
	"legs": true,
	"block": "5.0",
	"reused_count": 2,
	"year": 2023,
	"month": 6
}`

func TestInputParameters(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(referenceJSON), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := in.Parameters()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	want := Parameters{
		PayloadMass: 5000,
		Orbit:       OrbitLEO,
		LaunchSite:  SiteCCAFSSLC40,
		GridFins:    true,
		Reused:      true,
		Legs:        true,
		Block:       5,
		ReusedCount: 2,
		Year:        2023,
		Month:       6,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestInputParameters_NumericBlock(t *testing.T) {
	var in Input
	raw := []byte(`{"payload_mass":1,"orbit":"GTO","launch_site":"KSC LC 39A","grid_fins":false,"reused":false,"legs":false,"block":4,"reused_count":0,"year":2017,"month":3}`)
	if err := json.Unmarshal(raw, &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := in.Parameters()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got.Block != 4 {
		t.Fatalf("block=%v want=4", got.Block)
	}
}

func TestInputParameters_MissingFieldNamed(t *testing.T) {
	fields := []string{
		FieldPayloadMass, FieldOrbit, FieldLaunchSite, FieldGridFins, FieldReused,
		FieldLegs, FieldBlock, FieldReusedCount, FieldYear, FieldMonth,
	}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var m map[string]any
			if err := json.Unmarshal([]byte(referenceJSON), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			delete(m, field)
			raw, _ := json.Marshal(m)
			var in Input
			if err := json.Unmarshal(raw, &in); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			_, err := in.Parameters()
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("err=%v want *FieldError", err)
			}
			if fe.Field != field || fe.Reason != "required" {
				t.Fatalf("got %s/%s want %s/required", fe.Field, fe.Reason, field)
			}
		})
	}
}

func TestInputParameters_OutOfDomain(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(referenceJSON), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	orbit := "GEO"
	in.Orbit = &orbit
	_, err := in.Parameters()
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != FieldOrbit {
		t.Fatalf("err=%v want orbit field error", err)
	}
}

func TestDecodeFieldError(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"orbit number", `{"orbit": 7}`, FieldOrbit},
		{"fractional reuse count", `{"reused_count": 2.5}`, FieldReusedCount},
		{"block object", `{"block": {}}`, FieldBlock},
		{"block bool", `{"block": true}`, FieldBlock},
		{"grid fins string", `{"grid_fins": "yes"}`, FieldGridFins},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in Input
			err := json.Unmarshal([]byte(tc.body), &in)
			if err == nil {
				t.Fatalf("expected decode error")
			}
			fe, ok := DecodeFieldError(err)
			if !ok || fe.Field != tc.field {
				t.Fatalf("err=%v field=%v want=%s", err, fe, tc.field)
			}
			if !errors.Is(fe, ErrInvalid) {
				t.Fatalf("field error should match ErrInvalid")
			}
		})
	}
}

func TestDecodeFieldError_Syntax(t *testing.T) {
	var in Input
	err := json.Unmarshal([]byte(`{not json`), &in)
	if _, ok := DecodeFieldError(err); ok {
		t.Fatalf("syntax error should carry no field: %v", err)
	}
}
