package blog

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Semior001/newsblog/app/store"
	"github.com/samber/lo"
)

//go:embed data/prompt.tmpl
var prompt string

var promptTmpl = template.Must(template.New("prompt").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(prompt))

const (
	maxHeadlines = 3
	maxSources   = 3
)

// PromptParams defines parameters to build a prompt for the post.
type PromptParams struct {
	Topic       string
	Articles    []store.Article
	Preferences store.Preferences // expected to be with defaults
	Emotion     store.Emotion
	Humor       string // effective humor level
}

type promptData struct {
	Topic         string
	ArticlesCount int
	Sources       []string
	MoreSources   bool
	Headlines     []string
	Tone          string
	Perspective   string
	Audience      string
	Humor         string
	Emotion       store.Emotion
}

// BuildPrompt builds a request to write a post about the topic.
func BuildPrompt(p PromptParams) (string, error) {
	headlines := lo.FilterMap(p.Articles, func(a store.Article, _ int) (string, bool) {
		return a.Title, a.Title != ""
	})

	sources := lo.Uniq(lo.FilterMap(p.Articles, func(a store.Article, _ int) (string, bool) {
		return a.Source, a.Source != ""
	}))

	data := promptData{
		Topic:         p.Topic,
		ArticlesCount: len(p.Articles),
		Sources:       lo.Subset(sources, 0, maxSources),
		MoreSources:   len(sources) > maxSources,
		Headlines:     lo.Subset(headlines, 0, maxHeadlines),
		Tone:          p.Preferences.Tone,
		Perspective:   p.Preferences.Perspective,
		Audience:      p.Preferences.Audience,
		Humor:         p.Humor,
		Emotion:       p.Emotion,
	}

	buf := &strings.Builder{}
	if err := promptTmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template: %w", err)
	}

	return buf.String(), nil
}
