package launch

import (
	"errors"
	"testing"
)

func TestParseBlock(t *testing.T) {
	tests := []struct {
		in      string
		want    Block
		wantErr bool
	}{
		{"5.0", 5, false},
		{"5", 5, false},
		{" B4 ", 4, false},
		{"1.0", 1, false},
		{"5.5", 0, true},
		{"six", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseBlock(tt.in)
		if tt.wantErr {
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != FieldBlock {
				t.Fatalf("ParseBlock(%q) err=%v want block field error", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseBlock(%q) err=%v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseBlock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_Boundaries(t *testing.T) {
	p := Parameters{
		PayloadMass: 0.5,
		Orbit:       OrbitPO,
		LaunchSite:  SiteVAFBSLC4E,
		Block:       1,
		ReusedCount: 0,
		Year:        MinYear,
		Month:       1,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("err=%v", err)
	}
	p.Year, p.Month = MaxYear, 12
	if err := p.Validate(); err != nil {
		t.Fatalf("err=%v", err)
	}
	p.Month = 0
	err := p.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err=%v want ErrInvalid", err)
	}
}

func TestAcceptedDomains(t *testing.T) {
	d := AcceptedDomains()
	if len(d.Orbits) != 8 || len(d.Sites) != 4 || len(d.Blocks) != 5 {
		t.Fatalf("domains=%+v", d)
	}
	if d.Blocks[4] != "5.0" {
		t.Fatalf("blocks=%v want last 5.0", d.Blocks)
	}
}
