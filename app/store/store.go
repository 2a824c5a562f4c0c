// Package store contains models of the application and the storage of generated posts.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is an error that is returned when the requested entity is not found.
var ErrNotFound = errors.New("not found")

// Interface defines methods for posts store.
type Interface interface {
	Put(ctx context.Context, p Post) error
	Get(ctx context.Context, id string) (Post, error)
	List(ctx context.Context, req ListRequest) ([]Post, error)
}

// ListRequest defines parameters for listing posts from store.
type ListRequest struct {
	// Topic, if not empty, filters posts by the exact topic.
	Topic string
}

// Article is a single news record returned by the news provider.
// Empty fields mean the provider didn't return them.
type Article struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Link    string `json:"link"`
	Date    string `json:"date"`
}

// Emotion is a coarse sentiment label of the news.
type Emotion string

// Possible emotions.
const (
	Positive Emotion = "positive"
	Negative Emotion = "negative"
	Neutral  Emotion = "neutral"
	Urgent   Emotion = "urgent"
)

// Preferences describes the style of the post requested by the user.
type Preferences struct {
	Tone        string `json:"tone,omitempty"`
	Perspective string `json:"perspective,omitempty"`
	Audience    string `json:"audience,omitempty"`
	HumorLevel  string `json:"humor_level,omitempty"`
}

// WithDefaults returns a copy of preferences with empty fields set to defaults.
func (p Preferences) WithDefaults() Preferences {
	if p.Tone == "" {
		p.Tone = "informative"
	}
	if p.Perspective == "" {
		p.Perspective = "balanced"
	}
	if p.Audience == "" {
		p.Audience = "general"
	}
	if p.HumorLevel == "" {
		p.HumorLevel = "moderate"
	}
	return p
}

// Post is a generated blog post along with the parameters it was generated with.
type Post struct {
	ID            string      `json:"id"`
	Topic         string      `json:"topic"`
	Requested     Preferences `json:"requested"`
	Emotion       Emotion     `json:"emotion"`
	Humor         string      `json:"humor"`
	ArticlesCount int         `json:"articles_count"`
	Blog          string      `json:"blog"`
	CreatedAt     time.Time   `json:"created_at"`
}
