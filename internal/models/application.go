// internal/models/application.go
package models

import "strings"

// Application is one competition submission as persisted in the store.
// ID and CreatedAt are assigned by the store at write time, never by the caller.
type Application struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"` // RFC3339, UTC

	Name      string `json:"name"`
	Email     string `json:"email"`
	DiscordID string `json:"discordId"`

	TeamName                  string `json:"teamName"`
	TeamMembers               string `json:"teamMembers"`
	TeamExperience            string `json:"teamExperience"`
	PreviousProjects          string `json:"previousProjects"`
	TeamExperienceDescription string `json:"teamExperienceDescription"`

	GameTitle      string `json:"gameTitle"`
	GameConcept    string `json:"gameConcept"`
	WhyWin         string `json:"whyWin"`
	WhyPlayersLike string `json:"whyPlayersLike"`

	PromotionPlan       string `json:"promotionPlan"`
	MonetizationPlan    string `json:"monetizationPlan"`
	ProjectedDAU        int    `json:"projectedDAU"`
	DayOneRetention     int    `json:"dayOneRetention"`
	DevelopmentTimeline string `json:"developmentTimeline"`
	ResourcesTools      string `json:"resourcesTools"`
}

// Submission is the applicant-supplied field set, before the store assigns
// identity. It is the Application minus the generated fields.
type Submission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	DiscordID string `json:"discordId"`

	TeamName                  string `json:"teamName"`
	TeamMembers               string `json:"teamMembers"`
	TeamExperience            string `json:"teamExperience"`
	PreviousProjects          string `json:"previousProjects"`
	TeamExperienceDescription string `json:"teamExperienceDescription"`

	GameTitle      string `json:"gameTitle"`
	GameConcept    string `json:"gameConcept"`
	WhyWin         string `json:"whyWin"`
	WhyPlayersLike string `json:"whyPlayersLike"`

	PromotionPlan       string `json:"promotionPlan"`
	MonetizationPlan    string `json:"monetizationPlan"`
	ProjectedDAU        int    `json:"projectedDAU"`
	DayOneRetention     int    `json:"dayOneRetention"`
	DevelopmentTimeline string `json:"developmentTimeline"`
	ResourcesTools      string `json:"resourcesTools"`

	Acknowledgment bool `json:"acknowledgment"`
}

// NormalizeEmail lowercases and trims an email for uniqueness comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeDiscordID lowercases and trims a Discord ID for uniqueness comparison.
func NormalizeDiscordID(discordID string) string {
	return strings.ToLower(strings.TrimSpace(discordID))
}
