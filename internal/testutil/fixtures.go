package testutil

import (
	"embed"

	"github.com/make-your-choice/choice-ctl/internal/region"
)

//go:embed fixtures/*.hosts fixtures/*.toml
var fixturesFS embed.FS

// Hostnames of the fixture catalog.
const (
	LondonService = "gamelift.eu-west-2.amazonaws.com"
	LondonPing    = "gamelift-ping.eu-west-2.api.aws"
	ParisService  = "gamelift.eu-west-3.amazonaws.com"
	ParisPing     = "gamelift-ping.eu-west-3.api.aws"
	OhioService   = "gamelift.us-east-2.amazonaws.com"
	OhioPing      = "gamelift-ping.us-east-2.api.aws"
)

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustFixture loads a fixture file and panics if it is missing.
func MustFixture(name string) string {
	data, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// PlainHosts is a hosts file without a Make Your Choice block.
func PlainHosts() string {
	return MustFixture("plain.hosts")
}

// AppliedHosts is a hosts file with a Gatekeep block allowing London.
func AppliedHosts() string {
	return MustFixture("applied.hosts")
}

// DamagedHosts is a hosts file with a single dangling marker.
func DamagedHosts() string {
	return MustFixture("damaged.hosts")
}

// Catalog returns three regions: London (stable), Paris (unstable) and
// Ohio (stable), matching the hosts fixtures.
func Catalog() *region.Catalog {
	return region.MustCatalog(
		region.Region{ID: "Europe (London)", Code: "eu-west-2", Hosts: []string{LondonService, LondonPing}, Stable: true},
		region.Region{ID: "Europe (Paris)", Code: "eu-west-3", Hosts: []string{ParisService, ParisPing}, Stable: false},
		region.Region{ID: "US East (Ohio)", Code: "us-east-2", Hosts: []string{OhioService, OhioPing}, Stable: true},
	)
}
