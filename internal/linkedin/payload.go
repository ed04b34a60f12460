package linkedin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
)

// Wire shapes of the data provider. Every conversion into domain values
// happens in this file.

type datePayload struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type geoPayload struct {
	Country     string `json:"country"`
	City        string `json:"city"`
	Full        string `json:"full"`
	CountryCode string `json:"countryCode"`
}

type educationPayload struct {
	Start        *datePayload `json:"start"`
	End          *datePayload `json:"end"`
	FieldOfStudy string       `json:"fieldOfStudy"`
	Degree       string       `json:"degree"`
	Grade        string       `json:"grade"`
	SchoolName   string       `json:"schoolName"`
	Description  string       `json:"description"`
	Activities   string       `json:"activities"`
	URL          string       `json:"url"`
	SchoolID     string       `json:"schoolId"`
}

type positionPayload struct {
	CompanyID      int64        `json:"companyId"`
	CompanyName    string       `json:"companyName"`
	Title          string       `json:"title"`
	Location       string       `json:"location"`
	Description    string       `json:"description"`
	EmploymentType string       `json:"employmentType"`
	Start          *datePayload `json:"start"`
	End            *datePayload `json:"end"`
}

type skillPayload struct {
	Name                  string `json:"name"`
	PassedSkillAssessment bool   `json:"passedSkillAssessment"`
	EndorsementsCount     int    `json:"endorsementsCount"`
}

type profilePayload struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`

	ID             int64              `json:"id"`
	URN            string             `json:"urn"`
	Username       string             `json:"username"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	IsTopVoice     bool               `json:"isTopVoice"`
	IsCreator      bool               `json:"isCreator"`
	IsPremium      bool               `json:"isPremium"`
	ProfilePicture string             `json:"profilePicture"`
	Summary        string             `json:"summary"`
	Headline       string             `json:"headline"`
	Geo            geoPayload         `json:"geo"`
	Educations     []educationPayload `json:"educations"`
	Positions      []positionPayload  `json:"position"`
	Skills         []skillPayload     `json:"skills"`
}

type authorPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Headline  string `json:"headline"`
	Username  string `json:"username"`
	URL       string `json:"url"`
}

type postPayload struct {
	Text               string        `json:"text"`
	TotalReactionCount int           `json:"totalReactionCount"`
	LikeCount          int           `json:"likeCount"`
	CommentsCount      int           `json:"commentsCount"`
	RepostsCount       int           `json:"repostsCount"`
	PostURL            string        `json:"postUrl"`
	PostedDate         string        `json:"postedDate"`
	Author             authorPayload `json:"author"`
	ContentType        string        `json:"contentType"`
}

type postsPayload struct {
	Success *bool         `json:"success"`
	Message string        `json:"message"`
	Data    []postPayload `json:"data"`
}

var errEmptyBody = errors.New("empty body")

// decodeProfile validates a raw profile body and converts it.
// A success:false body maps to domain.ErrNotFound; a shape mismatch to *domain.DecodeError.
func decodeProfile(h domain.Handle, body []byte) (domain.Profile, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.Profile{}, &domain.DecodeError{Resource: "profile", Err: errEmptyBody}
	}

	var p profilePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Profile{}, &domain.DecodeError{Resource: "profile", Err: err}
	}
	if p.Success != nil && !*p.Success {
		return domain.Profile{}, notFound(h, p.Message)
	}
	if p.FirstName == "" && p.LastName == "" {
		return domain.Profile{}, &domain.DecodeError{Resource: "profile", Err: errors.New("profile has no name")}
	}

	out := domain.Profile{
		ID:             p.ID,
		URN:            p.URN,
		Username:       p.Username,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		IsTopVoice:     p.IsTopVoice,
		IsCreator:      p.IsCreator,
		IsPremium:      p.IsPremium,
		ProfilePicture: p.ProfilePicture,
		Summary:        p.Summary,
		Headline:       p.Headline,
		Geo: domain.Geo{
			Country:     p.Geo.Country,
			City:        p.Geo.City,
			Full:        p.Geo.Full,
			CountryCode: p.Geo.CountryCode,
		},
		Educations: make([]domain.Education, 0, len(p.Educations)),
		Positions:  make([]domain.Position, 0, len(p.Positions)),
		Skills:     make([]domain.Skill, 0, len(p.Skills)),
	}
	if out.Username == "" {
		out.Username = h.String()
	}

	for _, e := range p.Educations {
		out.Educations = append(out.Educations, domain.Education{
			Start:        toDate(e.Start),
			End:          toDate(e.End),
			FieldOfStudy: e.FieldOfStudy,
			Degree:       e.Degree,
			Grade:        e.Grade,
			SchoolName:   e.SchoolName,
			Description:  e.Description,
			Activities:   e.Activities,
			URL:          e.URL,
			SchoolID:     e.SchoolID,
		})
	}
	for _, pos := range p.Positions {
		out.Positions = append(out.Positions, domain.Position{
			CompanyID:      pos.CompanyID,
			CompanyName:    pos.CompanyName,
			Title:          pos.Title,
			Location:       pos.Location,
			Description:    pos.Description,
			EmploymentType: pos.EmploymentType,
			Start:          toDate(pos.Start),
			End:            toDate(pos.End),
		})
	}
	for _, s := range p.Skills {
		out.Skills = append(out.Skills, domain.Skill{
			Name:                  s.Name,
			PassedSkillAssessment: s.PassedSkillAssessment,
			EndorsementsCount:     s.EndorsementsCount,
		})
	}

	return out, nil
}

// decodePosts validates a raw posts body and converts it.
// An empty body, an empty object or success:false all map to domain.ErrNotFound.
func decodePosts(h domain.Handle, body []byte) ([]domain.Post, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) {
		return nil, notFound(h, "empty posts response")
	}

	var p postsPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, &domain.DecodeError{Resource: "posts", Err: err}
	}
	if p.Success != nil && !*p.Success {
		return nil, notFound(h, p.Message)
	}

	out := make([]domain.Post, 0, len(p.Data))
	for _, post := range p.Data {
		out = append(out, domain.Post{
			Text:               post.Text,
			TotalReactionCount: post.TotalReactionCount,
			LikeCount:          post.LikeCount,
			CommentsCount:      post.CommentsCount,
			RepostsCount:       post.RepostsCount,
			PostURL:            post.PostURL,
			PostedDate:         post.PostedDate,
			ContentType:        post.ContentType,
			Author: domain.Author{
				ID:        post.Author.ID,
				FirstName: post.Author.FirstName,
				LastName:  post.Author.LastName,
				Headline:  post.Author.Headline,
				Username:  post.Author.Username,
				URL:       post.Author.URL,
			},
		})
	}
	return out, nil
}

func toDate(d *datePayload) *domain.Date {
	if d == nil {
		return nil
	}
	return &domain.Date{Year: d.Year, Month: d.Month, Day: d.Day}
}

func notFound(h domain.Handle, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, h)
	}
	return fmt.Errorf("%w: %s (%s)", domain.ErrNotFound, h, reason)
}
