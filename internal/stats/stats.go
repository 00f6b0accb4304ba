// Package stats derives per-region submission counts and imminent deadline
// alerts for a claim. All parsing here is best-effort: a malformed deadline is
// skipped, never surfaced.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kdudkov/goclaim/internal/model"
)

// NotSpecified buckets submissions whose region value is absent.
const NotSpecified = "Non specificata"

const (
	noRegionMsg = "Nessun campo regione trovato"

	// deadlines within this many whole days are reported as imminent
	imminentWindowDays = 30
)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type SubmissionRef struct {
	ID          string    `json:"id"`
	ReferenceID string    `json:"reference_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type RegionStat struct {
	Count       int              `json:"count"`
	Submissions []*SubmissionRef `json:"submissions"`
}

type Deadline struct {
	Region   string `json:"regione"`
	Deadline string `json:"scadenza"`
	DaysLeft int    `json:"giorni_rimanenti"`
	Received int    `json:"submissions_ricevute"`
}

type Stats struct {
	ClaimID         string                 `json:"ricorso_id"`
	ClaimTitle      string                 `json:"ricorso_titolo"`
	Total           int                    `json:"totale_submissions"`
	PerRegion       map[string]*RegionStat `json:"per_regione"`
	RegionDeadlines map[string]string      `json:"scadenze_regioni"`
	DefaultDeadline string                 `json:"scadenza_generale,omitempty"`
	Imminent        []*Deadline            `json:"scadenze_imminenti"`
	Message         string                 `json:"message,omitempty"`
}

// RegionField finds the claim field holding the region value. A field matches
// when its id is literally "regione" or its label equals "regione" case
// insensitively; the first match wins. Existing claims depend on this
// convention, do not change it.
func RegionField(fields []*model.Field) string {
	for _, f := range fields {
		if f.ID == "regione" || strings.EqualFold(f.Label, "regione") {
			return f.ID
		}
	}

	return ""
}

// Build computes the stats for a claim over its submissions as of now.
func Build(claim *model.Claim, subs []*model.Submission, now time.Time) *Stats {
	res := &Stats{
		ClaimID:         claim.ID,
		ClaimTitle:      claim.Title,
		Total:           len(subs),
		PerRegion:       make(map[string]*RegionStat),
		RegionDeadlines: claim.RegionDeadlines,
		DefaultDeadline: claim.DefaultDeadline,
		Imminent:        []*Deadline{},
	}

	if res.RegionDeadlines == nil {
		res.RegionDeadlines = map[string]string{}
	}

	fieldID := RegionField(claim.Fields)

	if fieldID == "" {
		res.Message = noRegionMsg
		return res
	}

	for _, sub := range subs {
		// the raw value keys the bucket, even an empty or non-string one
		region := NotSpecified

		if v, ok := sub.UserData[fieldID]; ok {
			if s, ok := v.(string); ok {
				region = s
			} else {
				region = fmt.Sprint(v)
			}
		}

		st, ok := res.PerRegion[region]
		if !ok {
			st = &RegionStat{}
			res.PerRegion[region] = st
		}

		st.Count++
		st.Submissions = append(st.Submissions, &SubmissionRef{
			ID:          sub.ID,
			ReferenceID: sub.ReferenceID,
			SubmittedAt: sub.SubmittedAt,
		})
	}

	for region, s := range claim.RegionDeadlines {
		deadline, ok := parseDeadline(s)
		if !ok {
			continue
		}

		days := wholeDays(deadline.Sub(now))

		if days < 0 || days > imminentWindowDays {
			continue
		}

		received := 0
		if st, ok := res.PerRegion[region]; ok {
			received = st.Count
		}

		res.Imminent = append(res.Imminent, &Deadline{
			Region:   region,
			Deadline: s,
			DaysLeft: days,
			Received: received,
		})
	}

	return res
}

func parseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// wholeDays floors, so a deadline one hour in the past counts as -1 and
// falls outside the window.
func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
