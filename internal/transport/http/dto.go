package http

import (
	"github.com/soulai-app/soulai/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type navigateRequest struct {
	View domain.View `json:"view"`
}

type sendMessageRequest struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type reportRequest struct {
	TargetID string              `json:"targetId"`
	Reason   domain.ReportReason `json:"reason"`
}

type banRequest struct {
	TargetID string `json:"targetId"`
}

type matchRequest struct {
	MatchID string `json:"matchId"`
}

type candidateResponse struct {
	Profile   *domain.Profile `json:"profile,omitempty"`
	Exhausted bool            `json:"exhausted"`
}

type icebreakersResponse struct {
	Suggestions []string `json:"suggestions"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type reportsResponse struct {
	Reports       []domain.Report `json:"reports"`
	NextPageToken *string         `json:"nextPageToken,omitempty"`
}
