// Package search assembles Google search queries that surface scheduler-booking
// links for targeted people and organizations. Building a query has no side
// effects; the caller decides whether to open or copy the resulting URL.
package search

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// TimeRange restricts search results to a recency window via a URL parameter.
type TimeRange string

// Supported time ranges.
const (
	TimeRangeAny       TimeRange = "any"
	TimeRangePastYear  TimeRange = "past-year"
	TimeRangePastMonth TimeRange = "past-month"
)

// Params are the structured inputs for one query-building request.
type Params struct {
	Targets                    []string  `json:"targets"`
	Organizations              []string  `json:"organizations"`
	Location                   string    `json:"location"`
	Platforms                  []string  `json:"platforms"`
	TimeRange                  TimeRange `json:"time_range"`
	SchedulerPlatforms         []string  `json:"scheduler_platforms"`
	IncludeGenericBookingTerms bool      `json:"include_generic_booking_terms"`
	ExcludeTerms               []string  `json:"exclude_terms"`
	MaxResults                 int       `json:"max_results"`
}

// Query is one ready-to-use search. Query text and URL are deterministic for
// identical params; only the ID differs between calls.
type Query struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Query    string `json:"query"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

const searchBaseURL = "https://www.google.com/search?q="

// Phrases appended to the scheduler OR-group when generic booking terms are
// enabled. Only reachable when at least one scheduler platform is selected.
var genericBookingTerms = []string{
	"book a call",
	"schedule a meeting",
	"book time",
	"book a meeting",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Build turns search parameters into an ordered list of platform-specific
// queries, optionally followed by a general web query. Platforms the builder
// does not recognise are skipped.
func Build(params Params) []Query {
	var queries []Query

	schedulerTerms := buildSchedulerClause(params.SchedulerPlatforms, params.IncludeGenericBookingTerms)
	targetTerms := quoteTerms(params.Targets)
	orgTerms := quoteTerms(params.Organizations)

	locationTerm := ""
	if params.Location != "" {
		locationTerm = quote(params.Location)
	}

	excludeTerms := buildExcludeClause(params.ExcludeTerms)
	timeParam := timeRangeParam(params.TimeRange)

	for _, platform := range params.Platforms {
		var composed string

		switch platform {
		case "LinkedIn":
			composed = join("site:linkedin.com/in", schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms)
		case "Twitter":
			composed = join("site:twitter.com", schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms)
		case "Company Sites":
			if orgTerms != "" {
				composed = join(schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms,
					"-site:linkedin.com -site:twitter.com -site:facebook.com")
			} else {
				composed = join(schedulerTerms, targetTerms, locationTerm,
					`"partner" OR "principal" OR "director" OR "founder"`, excludeTerms,
					"-site:linkedin.com -site:twitter.com")
			}
		case "Medium/Substack":
			composed = join("(site:medium.com OR site:substack.com)", schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms)
		case "Crunchbase":
			composed = join("site:crunchbase.com", schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms)
		case "PDFs":
			composed = join("filetype:pdf", schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms)
		}

		if composed == "" {
			continue
		}

		queries = append(queries, Query{
			ID:       newQueryID(platform),
			Title:    platform + " Search",
			Query:    composed,
			URL:      searchBaseURL + encodeQuery(composed) + timeParam,
			Platform: platform,
		})
	}

	if targetTerms != "" || orgTerms != "" {
		composed := join(schedulerTerms, targetTerms, orgTerms, locationTerm, excludeTerms,
			"-site:linkedin.com -site:twitter.com")

		queries = append(queries, Query{
			ID:       newQueryID("general"),
			Title:    "General Web Search",
			Query:    composed,
			URL:      searchBaseURL + encodeQuery(composed) + timeParam,
			Platform: "General",
		})
	}

	return queries
}

// buildSchedulerClause renders the parenthesised OR-group of scheduler domains.
// With no platforms selected the clause is empty and generic booking terms are
// never emitted on their own.
func buildSchedulerClause(platforms []string, includeGeneric bool) string {
	if len(platforms) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(platforms))
	for _, p := range platforms {
		quoted = append(quoted, quote(p))
	}
	group := strings.Join(quoted, " OR ")

	if includeGeneric {
		for _, term := range genericBookingTerms {
			group += " OR " + quote(term)
		}
	}

	return "(" + group + ")"
}

func buildExcludeClause(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(terms))
	for _, term := range terms {
		rendered = append(rendered, "-"+quote(term))
	}
	return strings.Join(rendered, " ")
}

func timeRangeParam(timeRange TimeRange) string {
	switch timeRange {
	case TimeRangePastYear:
		return "&tbs=qdr:y"
	case TimeRangePastMonth:
		return "&tbs=qdr:m"
	default:
		return ""
	}
}

// quoteTerms wraps each term in double quotes and joins with spaces, yielding
// an AND of exact phrases under Google's default semantics.
func quoteTerms(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, quote(term))
	}
	return strings.Join(quoted, " ")
}

func quote(term string) string {
	return `"` + term + `"`
}

// join concatenates clauses, collapses whitespace runs and trims the result.
func join(clauses ...string) string {
	combined := strings.Join(clauses, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(combined, " "))
}

// encodeQuery percent-encodes a query for the q= parameter. Spaces become %20
// rather than the form-encoded +, keeping URLs shareable as plain links.
func encodeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

func newQueryID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
