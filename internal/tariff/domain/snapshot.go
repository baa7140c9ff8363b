package domain

import (
	"context"
	"sort"
	"time"
)

// Snapshot is a frozen tariff index captured once per rating run. Every
// lookup inside the run resolves against it, so concurrent tariff edits
// cannot change the rule set mid-batch.
type Snapshot struct {
	ReferenceDate time.Time

	// byKey holds the full version history per (utility, code), sorted by
	// effective date ascending.
	byKey map[snapshotKey][]TariffRate
}

type snapshotKey struct {
	utilityType string
	code        string
}

// BuildSnapshot loads all tariff rows effective on or before asOf into an
// in-memory index.
func BuildSnapshot(ctx context.Context, repo Repository, asOf time.Time) (*Snapshot, error) {
	rows, err := repo.ListUpTo(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(asOf, rows), nil
}

// NewSnapshot indexes the given rows as of the reference date. Rows with a
// later effective date are ignored.
func NewSnapshot(asOf time.Time, rows []TariffRate) *Snapshot {
	s := &Snapshot{
		ReferenceDate: asOf,
		byKey:         make(map[snapshotKey][]TariffRate),
	}
	for _, row := range rows {
		if row.EffectiveDate.After(asOf) {
			continue
		}
		k := snapshotKey{utilityType: row.UtilityType, code: row.Code}
		s.byKey[k] = append(s.byKey[k], row)
	}
	for k := range s.byKey {
		versions := s.byKey[k]
		sort.Slice(versions, func(i, j int) bool {
			return versions[i].EffectiveDate.Before(versions[j].EffectiveDate)
		})
		s.byKey[k] = versions
	}
	return s
}

// Latest returns the newest version for (code, utilityType) effective on or
// before the snapshot's reference date, or nil.
func (s *Snapshot) Latest(code, utilityType string) *TariffRate {
	versions := s.byKey[snapshotKey{utilityType: utilityType, code: code}]
	if len(versions) == 0 {
		return nil
	}
	row := versions[len(versions)-1]
	return &row
}

// LatestByCode resolves a code across utility types; charge-map overrides
// reference tariffs by code alone.
func (s *Snapshot) LatestByCode(code string) *TariffRate {
	var newest *TariffRate
	for k, versions := range s.byKey {
		if k.code != code || len(versions) == 0 {
			continue
		}
		row := versions[len(versions)-1]
		if newest == nil || row.EffectiveDate.After(newest.EffectiveDate) {
			newest = &row
		}
	}
	return newest
}

// Tiers returns the effective block tariffs for a utility, one row per
// code (latest version), ordered by block start ascending with the open
// top tier last.
func (s *Snapshot) Tiers(utilityType string) []TariffRate {
	var tiers []TariffRate
	for k, versions := range s.byKey {
		if k.utilityType != utilityType || len(versions) == 0 {
			continue
		}
		row := versions[len(versions)-1]
		if !row.IsBlock() {
			continue
		}
		tiers = append(tiers, row)
	}
	sort.Slice(tiers, func(i, j int) bool {
		return blockStartOf(tiers[i]) < blockStartOf(tiers[j])
	})
	return tiers
}

func blockStartOf(t TariffRate) float64 {
	if t.BlockStart != nil {
		return *t.BlockStart
	}
	return 0
}
