package twin

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// State holds every resource the twin serves.
type State struct {
	Profiles           *Store[CustomerProfile]
	EntityAssignments  *Store[EntityAssignment]
	ChannelAssignments *Store[ChannelEndpointAssignment]
	Brands             *Store[BrandRegistration]
	Services           *Store[MessagingService]
	Campaigns          *Store[Campaign]
	Accounts           *Store[Account]
}

// NewState creates empty state. Generated SIDs use Twilio's prefixes.
func NewState() *State {
	return &State{
		Profiles:           NewStore[CustomerProfile]("BU"),
		EntityAssignments:  NewStore[EntityAssignment]("BV"),
		ChannelAssignments: NewStore[ChannelEndpointAssignment]("RA"),
		Brands:             NewStore[BrandRegistration]("BN"),
		Services:           NewStore[MessagingService]("MG"),
		Campaigns:          NewStore[Campaign]("QE"),
		Accounts:           NewStore[Account]("AC"),
	}
}

// Seed is the fixture format accepted by LoadSeed and served by GET
// /admin/state. It is YAML, and since YAML is a superset of JSON a JSON
// document works too.
type Seed struct {
	Profiles           []CustomerProfile           `json:"profiles" yaml:"profiles"`
	EntityAssignments  []EntityAssignment          `json:"entity_assignments" yaml:"entity_assignments"`
	ChannelAssignments []ChannelEndpointAssignment `json:"channel_assignments" yaml:"channel_assignments"`
	Brands             []BrandRegistration         `json:"brands" yaml:"brands"`
	Services           []MessagingService          `json:"services" yaml:"services"`
	Campaigns          []Campaign                  `json:"campaigns" yaml:"campaigns"`
	Accounts           []Account                   `json:"accounts" yaml:"accounts"`
}

// ParseSeed decodes a YAML or JSON fixture.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parsing seed: %w", err)
	}
	return seed, nil
}

// Load adds every record in seed. Records without a SID get a generated one
// that never collides with a SID the fixture spells out.
func (s *State) Load(seed Seed) {
	loadInto(s.Profiles, seed.Profiles, func(p *CustomerProfile) *string { return &p.SID })
	loadInto(s.EntityAssignments, seed.EntityAssignments, func(a *EntityAssignment) *string { return &a.SID })
	loadInto(s.ChannelAssignments, seed.ChannelAssignments, func(a *ChannelEndpointAssignment) *string { return &a.SID })
	loadInto(s.Brands, seed.Brands, func(b *BrandRegistration) *string { return &b.SID })
	loadInto(s.Services, seed.Services, func(m *MessagingService) *string { return &m.SID })
	loadInto(s.Campaigns, seed.Campaigns, func(c *Campaign) *string { return &c.SID })
	loadInto(s.Accounts, seed.Accounts, func(a *Account) *string { return &a.SID })
}

// loadInto stores records with explicit SIDs first, then assigns SIDs to the
// rest. Relative order within each group follows the fixture.
func loadInto[T any](store *Store[T], records []T, sid func(*T) *string) {
	var pending []T
	for _, r := range records {
		if id := *sid(&r); id != "" {
			store.Set(id, r)
			continue
		}
		pending = append(pending, r)
	}
	for _, r := range pending {
		id := store.NextID()
		*sid(&r) = id
		store.Set(id, r)
	}
}

// LoadSeed parses and loads a fixture.
func (s *State) LoadSeed(data []byte) error {
	seed, err := ParseSeed(data)
	if err != nil {
		return err
	}
	s.Load(seed)
	return nil
}

// Snapshot returns the current state in fixture form.
func (s *State) Snapshot() Seed {
	return Seed{
		Profiles:           s.Profiles.List(),
		EntityAssignments:  s.EntityAssignments.List(),
		ChannelAssignments: s.ChannelAssignments.List(),
		Brands:             s.Brands.List(),
		Services:           s.Services.List(),
		Campaigns:          s.Campaigns.List(),
		Accounts:           s.Accounts.List(),
	}
}

// Reset clears all state.
func (s *State) Reset() {
	s.Profiles.Reset()
	s.EntityAssignments.Reset()
	s.ChannelAssignments.Reset()
	s.Brands.Reset()
	s.Services.Reset()
	s.Campaigns.Reset()
	s.Accounts.Reset()
}
