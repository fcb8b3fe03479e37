package policy

import (
	"context"
	"strings"
	"testing"

	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
)

func twoRegions() *region.Catalog {
	return region.MustCatalog(
		region.Region{ID: "A", Hosts: []string{"a-svc", "a-ping"}, Stable: true},
		region.Region{ID: "B", Hosts: []string{"b-svc", "b-ping"}, Stable: true},
	)
}

// countingResolver records lookups.
type countingResolver struct {
	resolver.Static
	calls []string
}

func (r *countingResolver) Resolve(ctx context.Context, host string) (string, error) {
	r.calls = append(r.calls, host)
	return r.Static.Resolve(ctx, host)
}

func body(t *testing.T, block string) string {
	t.Helper()
	parts := strings.SplitN(block, "\n\n", 2)
	if len(parts) != 2 {
		t.Fatalf("block has no header separator: %q", block)
	}
	return parts[1]
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"gatekeep", ModeGatekeep, false},
		{"", ModeGatekeep, false},
		{"redirect", ModeUniversalRedirect, false},
		{"Universal-Redirect", ModeUniversalRedirect, false},
		{"sideways", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBlockMode(t *testing.T) {
	for _, m := range []BlockMode{BlockBoth, BlockPing, BlockService} {
		got, err := ParseBlockMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseBlockMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseBlockMode("none"); err == nil {
		t.Error("expected error for unknown block mode")
	}
}

func TestRenderGatekeep_Both(t *testing.T) {
	got, err := RenderGatekeep(twoRegions(), region.NewSelection("A"), GatekeepOptions{Block: BlockBoth})
	if err != nil {
		t.Fatalf("RenderGatekeep() error = %v", err)
	}

	want := "#         a-svc\n" +
		"#         a-ping\n" +
		"\n" +
		"0.0.0.0   b-svc\n" +
		"0.0.0.0   b-ping\n" +
		"\n"
	if b := body(t, got); b != want {
		t.Errorf("body = %q, want %q", b, want)
	}
}

func TestRenderGatekeep_Header(t *testing.T) {
	got, err := RenderGatekeep(twoRegions(), region.NewSelection("A"), GatekeepOptions{
		Header: Header{SupportURL: "https://example.com/help"},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(got, "\n")
	if lines[0] != headerTitle || lines[1] != headerGatekeep {
		t.Errorf("header = %q", lines[:2])
	}
	if lines[2] != "# Need help? Discord: https://example.com/help" {
		t.Errorf("support line = %q", lines[2])
	}
	if lines[3] != "" {
		t.Errorf("header should end with a blank line, got %q", lines[3])
	}

	def, _ := RenderGatekeep(twoRegions(), region.NewSelection("A"), GatekeepOptions{})
	if !strings.Contains(def, DefaultSupportURL) {
		t.Error("empty SupportURL should fall back to the default link")
	}
}

func TestRenderGatekeep_BlockModes(t *testing.T) {
	tests := []struct {
		mode BlockMode
		want string
	}{
		{BlockPing, "#         a-ping\n\n0.0.0.0   b-ping\n\n"},
		{BlockService, "#         a-svc\n\n0.0.0.0   b-svc\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, err := RenderGatekeep(twoRegions(), region.NewSelection("A"), GatekeepOptions{Block: tt.mode})
			if err != nil {
				t.Fatal(err)
			}
			if b := body(t, got); b != tt.want {
				t.Errorf("body = %q, want %q", b, tt.want)
			}
		})
	}
}

func TestRenderGatekeep_Errors(t *testing.T) {
	if _, err := RenderGatekeep(twoRegions(), nil, GatekeepOptions{}); !errors.IsKind(err, errors.ExitEmptySelection) {
		t.Errorf("empty selection error = %v, want EmptySelection", err)
	}
	if _, err := RenderGatekeep(twoRegions(), region.NewSelection("Z"), GatekeepOptions{}); !errors.IsKind(err, errors.ExitRegionNotFound) {
		t.Errorf("unknown region error = %v, want RegionNotFound", err)
	}
}

func TestEffectiveAllowSet(t *testing.T) {
	c := region.MustCatalog(
		region.Region{ID: "Europe (Unstable)", Hosts: []string{"u"}, Stable: false},
		region.Region{ID: "Europe (Stable)", Hosts: []string{"s"}, Stable: true},
		region.Region{ID: "Europe (Other)", Hosts: []string{"o"}, Stable: true},
		region.Region{ID: "Asia Pacific (Lonely)", Hosts: []string{"l"}, Stable: false},
	)

	tests := []struct {
		name  string
		sel   region.Selection
		merge bool
		want  []string
	}{
		{"merge adds first stable sibling", region.NewSelection("Europe (Unstable)"), true,
			[]string{"Europe (Unstable)", "Europe (Stable)"}},
		{"no merge", region.NewSelection("Europe (Unstable)"), false,
			[]string{"Europe (Unstable)"}},
		{"stable present disables merge", region.NewSelection("Europe (Unstable)", "Europe (Other)"), true,
			[]string{"Europe (Unstable)", "Europe (Other)"}},
		{"no sibling", region.NewSelection("Asia Pacific (Lonely)"), true,
			[]string{"Asia Pacific (Lonely)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveAllowSet(c, tt.sel, tt.merge)
			if err != nil {
				t.Fatal(err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("EffectiveAllowSet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderGatekeep_MergeUnstable(t *testing.T) {
	c := region.MustCatalog(
		region.Region{ID: "Europe (U)", Hosts: []string{"u-svc"}, Stable: false},
		region.Region{ID: "Europe (S)", Hosts: []string{"s-svc"}, Stable: true},
		region.Region{ID: "US East (X)", Hosts: []string{"x-svc"}, Stable: true},
	)

	got, err := RenderGatekeep(c, region.NewSelection("Europe (U)"), GatekeepOptions{MergeUnstable: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "#         u-svc\n\n#         s-svc\n\n0.0.0.0   x-svc\n\n"
	if b := body(t, got); b != want {
		t.Errorf("body = %q, want %q", b, want)
	}
}

func TestRenderUniversalRedirect(t *testing.T) {
	res := &countingResolver{Static: resolver.Static{"a-svc": "1.2.3.4", "a-ping": "5.6.7.8"}}

	got, err := RenderUniversalRedirect(context.Background(), twoRegions(), region.NewSelection("A"), res, Header{})
	if err != nil {
		t.Fatalf("RenderUniversalRedirect() error = %v", err)
	}

	if !strings.Contains(got, headerRedirect) {
		t.Error("missing redirect header line")
	}
	want := "1.2.3.4 a-svc\n5.6.7.8 a-ping\n\n1.2.3.4 b-svc\n5.6.7.8 b-ping\n\n"
	if b := body(t, got); b != want {
		t.Errorf("body = %q, want %q", b, want)
	}
	if len(res.calls) != 2 || res.calls[0] != "a-svc" || res.calls[1] != "a-ping" {
		t.Errorf("lookups = %v, want [a-svc a-ping]", res.calls)
	}
}

func TestRenderUniversalRedirect_SingleHostRegion(t *testing.T) {
	c := region.MustCatalog(
		region.Region{ID: "A", Hosts: []string{"a-svc"}, Stable: true},
		region.Region{ID: "B", Hosts: []string{"b-svc", "b-ping"}, Stable: true},
	)
	res := &countingResolver{Static: resolver.Static{"a-svc": "1.2.3.4"}}

	got, err := RenderUniversalRedirect(context.Background(), c, region.NewSelection("A"), res, Header{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "1.2.3.4 b-ping\n") {
		t.Errorf("ping hosts should use the service address when only one host exists: %q", got)
	}
}

func TestRenderUniversalRedirect_Errors(t *testing.T) {
	tests := []struct {
		name string
		sel  region.Selection
		res  resolver.Static
		code int
	}{
		{"empty", nil, resolver.Static{}, errors.ExitEmptySelection},
		{"two regions", region.NewSelection("A", "B"), resolver.Static{}, errors.ExitInvalidSelection},
		{"unknown", region.NewSelection("Z"), resolver.Static{}, errors.ExitRegionNotFound},
		{"ping lookup fails", region.NewSelection("A"), resolver.Static{"a-svc": "1.2.3.4"}, errors.ExitResolutionFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &countingResolver{Static: tt.res}
			_, err := RenderUniversalRedirect(context.Background(), twoRegions(), tt.sel, res, Header{})
			if !errors.IsKind(err, tt.code) {
				t.Fatalf("error = %v, want code %d", err, tt.code)
			}
			if tt.code == errors.ExitInvalidSelection && len(res.calls) != 0 {
				t.Errorf("resolver called %v before cardinality check", res.calls)
			}
		})
	}
}

func TestRenderUniversalRedirect_FailureNamesHost(t *testing.T) {
	res := &countingResolver{Static: resolver.Static{"a-svc": "1.2.3.4"}}
	_, err := RenderUniversalRedirect(context.Background(), twoRegions(), region.NewSelection("A"), res, Header{})

	var ce *errors.ChoiceError
	if !errors.As(err, &ce) || ce.Hostname != "a-ping" {
		t.Errorf("error = %v, want ResolutionFailure for a-ping", err)
	}
}

func TestDetectMode(t *testing.T) {
	gk, _ := RenderGatekeep(twoRegions(), region.NewSelection("A"), GatekeepOptions{})
	if m, ok := DetectMode(gk); !ok || m != ModeGatekeep {
		t.Errorf("DetectMode(gatekeep) = %q, %v", m, ok)
	}

	rd := RenderRedirect(twoRegions(), Target{Service: "1.1.1.1", Ping: "2.2.2.2"}, Header{})
	if m, ok := DetectMode(rd); !ok || m != ModeUniversalRedirect {
		t.Errorf("DetectMode(redirect) = %q, %v", m, ok)
	}

	if _, ok := DetectMode("0.0.0.0 foo\n"); ok {
		t.Error("DetectMode should fail without a header")
	}
}
