// Package config centralizes port, URL and artifact-name defaults shared by
// every SalesShortcut service. Values are overridable through environment
// variables; each service additionally accepts --host/--port flags.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Default service ports. Keep in sync with the deployment manifests.
const (
	DefaultCalendarPort    = 8080
	DefaultLeadFinderPort  = 8081
	DefaultLeadManagerPort = 8082
	DefaultOutreachPort    = 8083
	DefaultSDRPort         = 8084
	DefaultGmailWatchPort  = 8085
	DefaultUIClientPort    = 8000
)

// Artifact names used in A2A task results.
const (
	LeadFinderArtifact  = "lead_results"
	LeadManagerArtifact = "lead_management_decision"
	OutreachArtifact    = "outreach_decision"
	SDRArtifact         = "sdr_decision"
	CalendarArtifact    = "calendar_decision"
)

// Environment variables holding service URLs.
const (
	EnvLeadFinderURL  = "LEAD_FINDER_SERVICE_URL"
	EnvLeadManagerURL = "LEAD_MANAGER_SERVICE_URL"
	EnvOutreachURL    = "OUTREACH_SERVICE_URL"
	EnvSDRURL         = "SDR_SERVICE_URL"
	EnvCalendarURL    = "CALENDAR_SERVICE_URL"
	EnvUIClientURL    = "UI_CLIENT_SERVICE_URL"
)

func defaultURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

// ServiceURL resolves a sibling-service base URL from envVar, falling back to
// the localhost default for that service's port. A trailing slash is trimmed
// so callers can append paths directly.
func ServiceURL(envVar string, defaultPort int) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultURL(defaultPort)
}

// LeadFinderURL returns the lead finder base URL.
func LeadFinderURL() string { return ServiceURL(EnvLeadFinderURL, DefaultLeadFinderPort) }

// LeadManagerURL returns the lead manager base URL.
func LeadManagerURL() string { return ServiceURL(EnvLeadManagerURL, DefaultLeadManagerPort) }

// OutreachURL returns the outreach service base URL.
func OutreachURL() string { return ServiceURL(EnvOutreachURL, DefaultOutreachPort) }

// SDRURL returns the SDR service base URL.
func SDRURL() string { return ServiceURL(EnvSDRURL, DefaultSDRPort) }

// CalendarURL returns the calendar assistant base URL.
func CalendarURL() string { return ServiceURL(EnvCalendarURL, DefaultCalendarPort) }

// UIClientURL returns the dashboard base URL, the callback sink for every agent.
func UIClientURL() string { return ServiceURL(EnvUIClientURL, DefaultUIClientPort) }
