package manager

import (
	"context"
	"testing"

	"github.com/make-your-choice/choice-ctl/internal/hosts"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

func TestStatus_NoBlock(t *testing.T) {
	f := newFixture(t, userLines)

	st, err := f.mgr.Status(f.catalog)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if st.Active || st.Damaged || st.Markers != 0 {
		t.Errorf("status = %+v, want inactive", st)
	}
	if len(st.Regions) != 0 {
		t.Errorf("regions = %v, want none", st.Regions)
	}
}

func TestStatus_Gatekeep(t *testing.T) {
	f := newFixture(t, userLines)
	ctx := context.Background()
	if err := f.mgr.ApplyGatekeep(ctx, f.catalog, region.NewSelection("A"), policy.BlockBoth, false); err != nil {
		t.Fatal(err)
	}

	st, err := f.mgr.Status(f.catalog)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !st.Active || st.Mode != policy.ModeGatekeep {
		t.Errorf("status = %+v, want active gatekeep", st)
	}
	if len(st.Regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(st.Regions))
	}
	if st.Regions[0].State != StateAllowed {
		t.Errorf("A state = %q, want %q", st.Regions[0].State, StateAllowed)
	}
	if st.Regions[1].State != StateBlocked {
		t.Errorf("B state = %q, want %q", st.Regions[1].State, StateBlocked)
	}
}

func TestStatus_PartialBlock(t *testing.T) {
	f := newFixture(t, userLines)
	if err := f.mgr.ApplyGatekeep(context.Background(), f.catalog, region.NewSelection("A"), policy.BlockPing, false); err != nil {
		t.Fatal(err)
	}

	st, _ := f.mgr.Status(f.catalog)
	if st.Regions[1].State != StatePartial {
		t.Errorf("B state = %q, want %q", st.Regions[1].State, StatePartial)
	}
}

func TestStatus_Redirect(t *testing.T) {
	f := newFixture(t, userLines)
	if err := f.mgr.ApplyUniversalRedirect(context.Background(), f.catalog, region.NewSelection("A")); err != nil {
		t.Fatal(err)
	}

	st, err := f.mgr.Status(f.catalog)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != policy.ModeUniversalRedirect {
		t.Errorf("mode = %q, want redirect", st.Mode)
	}
	b := st.Regions[1]
	if b.State != StateRedirected {
		t.Errorf("B state = %q, want %q", b.State, StateRedirected)
	}
	if b.Hosts[0].Address != "1.2.3.4" || b.Hosts[1].Address != "5.6.7.8" {
		t.Errorf("B hosts = %+v", b.Hosts)
	}
}

func TestStatus_Damaged(t *testing.T) {
	f := newFixture(t, userLines+hosts.Marker+"\n0.0.0.0 a-svc\n")

	st, err := f.mgr.Status(f.catalog)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Damaged || st.Active || st.Markers != 1 {
		t.Errorf("status = %+v, want damaged", st)
	}
}
