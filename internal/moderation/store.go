// Package moderation tracks reports and the blocked-id set, and owns the
// ban cascade.
package moderation

import (
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
	"github.com/soulai-app/soulai/internal/utils/pagination"
)

// defaultPageSize bounds report listings when the caller passes no usable
// limit.
const defaultPageSize = 20

// ProfileRemover deletes a profile from the catalog's backing collection.
type ProfileRemover interface {
	Remove(id string)
}

// MatchRemover deletes all matches referencing a profile and returns the
// removed match ids.
type MatchRemover interface {
	RemoveByProfile(profileID string) []string
}

// ThreadDropper cancels pending replies and deletes a match's thread.
type ThreadDropper interface {
	Drop(matchID string)
}

// Store holds reports and blocked ids. Mutated only under the controller's
// intent lock; Ban applies its whole cascade before returning, so no reader
// observes a partial update.
type Store struct {
	reports []domain.Report
	blocked map[string]struct{}

	catalog ProfileRemover
	matches MatchRemover
	threads ThreadDropper
	log     *slog.Logger
}

// Dependencies wires the collections the ban cascade touches.
type Dependencies struct {
	Catalog ProfileRemover
	Matches MatchRemover
	Threads ThreadDropper
	Logger  *slog.Logger
}

func NewStore(deps Dependencies) *Store {
	return &Store{
		blocked: make(map[string]struct{}),
		catalog: deps.Catalog,
		matches: deps.Matches,
		threads: deps.Threads,
		log:     deps.Logger,
	}
}

// File creates a pending report and immediately blocks the target. Reporting
// and self-protective blocking are one state change: the reporter never sees
// the reported profile again regardless of the moderation outcome.
func (s *Store) File(reporterID, targetID string, reason domain.ReportReason) (domain.Report, error) {
	if !domain.ValidReportReason(reason) {
		return domain.Report{}, svcErr.Wrap(svcErr.ErrInvalidArgument, "unknown report reason %q", reason)
	}
	if targetID == "" {
		return domain.Report{}, svcErr.Wrap(svcErr.ErrInvalidArgument, "empty target id")
	}

	report := domain.Report{
		ID:         uuid.NewString(),
		ReporterID: reporterID,
		TargetID:   targetID,
		Reason:     reason,
		Timestamp:  time.Now(),
		Status:     domain.ReportPending,
	}
	s.reports = append(s.reports, report)
	s.blocked[targetID] = struct{}{}

	if s.log != nil {
		s.log.Info("report filed", "target", targetID, "reason", string(reason))
	}
	return report, nil
}

// Ban blocks the target and cascades: the profile leaves the catalog, its
// matches and threads are removed (with pending reply timers canceled), and
// every report against it is resolved.
func (s *Store) Ban(targetID string) {
	s.blocked[targetID] = struct{}{}

	if s.catalog != nil {
		s.catalog.Remove(targetID)
	}
	if s.matches != nil {
		for _, matchID := range s.matches.RemoveByProfile(targetID) {
			if s.threads != nil {
				s.threads.Drop(matchID)
			}
		}
	}
	for i := range s.reports {
		if s.reports[i].TargetID == targetID {
			s.reports[i].Status = domain.ReportResolved
		}
	}

	if s.log != nil {
		s.log.Info("profile banned", "target", targetID)
	}
}

// Resolve marks a single report resolved without blocking or banning.
func (s *Store) Resolve(reportID string) error {
	for i := range s.reports {
		if s.reports[i].ID == reportID {
			s.reports[i].Status = domain.ReportResolved
			return nil
		}
	}
	return svcErr.Wrap(svcErr.ErrNotFound, "report %s", reportID)
}

// IsBlocked reports whether the profile id is in the blocked set.
func (s *Store) IsBlocked(id string) bool {
	_, ok := s.blocked[id]
	return ok
}

// Reports lists reports newest-first with cursor pagination for the admin
// queue.
//
// Behavior:
//   - Ordered by timestamp DESC, id DESC. The ordering key is millisecond
//     timestamps, matching the cursor's resolution, so pages never lose
//     reports filed within the same millisecond.
//   - Supports cursor-based pagination via pageToken; fetches limit+1 to
//     decide whether a next page exists.
//   - Non-positive limits fall back to the default page size.
func (s *Store) Reports(pageToken *string, limit int) ([]domain.Report, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	token := ""
	if pageToken != nil {
		token = *pageToken
	}
	cursor, err := pagination.Decode(token)
	if err != nil {
		return nil, nil, svcErr.Wrap(svcErr.ErrInvalidArgument, "%v", err)
	}

	ordered := make([]domain.Report, len(s.reports))
	copy(ordered, s.reports)
	sort.Slice(ordered, func(i, j int) bool {
		ti, tj := ordered[i].Timestamp.UnixMilli(), ordered[j].Timestamp.UnixMilli()
		if ti != tj {
			return ti > tj
		}
		return ordered[i].ID > ordered[j].ID
	})

	page := make([]domain.Report, 0, limit+1)
	for _, r := range ordered {
		if cursor.ID != "" {
			ts := r.Timestamp.UnixMilli()
			if ts > cursor.CreatedUnix || (ts == cursor.CreatedUnix && r.ID >= cursor.ID) {
				continue
			}
		}
		page = append(page, r)
		if len(page) > limit {
			break
		}
	}

	var nextToken *string
	if len(page) > limit {
		last := page[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ID:          last.ID,
			CreatedUnix: last.Timestamp.UnixMilli(),
		})
		nextToken = &token
		page = page[:limit]
	}

	return page, nextToken, nil
}

// SnapshotReports serializes the report log.
func (s *Store) SnapshotReports() ([]byte, error) {
	return json.Marshal(struct {
		Reports []domain.Report `json:"reports"`
	}{Reports: s.reports})
}

// SnapshotBlocked serializes the blocked-id set.
func (s *Store) SnapshotBlocked() ([]byte, error) {
	ids := make([]string, 0, len(s.blocked))
	for id := range s.blocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return json.Marshal(struct {
		IDs []string `json:"ids"`
	}{IDs: ids})
}

// RestoreReports replaces the report log from a persisted record. Malformed
// data keeps the empty log and reports ErrPersistenceLoad.
func (s *Store) RestoreReports(data []byte) error {
	var record struct {
		Reports []domain.Report `json:"reports"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return svcErr.Wrap(svcErr.ErrPersistenceLoad, "reports: %v", err)
	}
	s.reports = record.Reports
	return nil
}

// RestoreBlocked replaces the blocked set from a persisted record.
func (s *Store) RestoreBlocked(data []byte) error {
	var record struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return svcErr.Wrap(svcErr.ErrPersistenceLoad, "blocked: %v", err)
	}
	s.blocked = make(map[string]struct{}, len(record.IDs))
	for _, id := range record.IDs {
		s.blocked[id] = struct{}{}
	}
	return nil
}
