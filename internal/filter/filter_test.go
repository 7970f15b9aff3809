package filter

import (
	"testing"
	"time"

	"github.com/num311/news-reader/internal/news"
)

func entryPublishedAt(t time.Time) news.FeedEntry {
	return news.FeedEntry{ID: "e", Title: "t", PublishedAt: &t}
}

func TestFilter_IsRecent(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	f := New(nil, 2)

	tests := []struct {
		name  string
		entry news.FeedEntry
		want  bool
	}{
		{
			name:  "entry without date is recent regardless of window",
			entry: news.FeedEntry{ID: "e", Title: "undated"},
			want:  true,
		},
		{
			name:  "entry inside window",
			entry: entryPublishedAt(now.Add(-1 * time.Hour)),
			want:  true,
		},
		{
			name:  "entry outside window",
			entry: entryPublishedAt(now.Add(-10 * time.Hour)),
			want:  false,
		},
		{
			name: "entry exactly on boundary is not recent",
			// Граница окна строгая
			entry: entryPublishedAt(now.Add(-2 * time.Hour)),
			want:  false,
		},
		{
			name:  "entry just inside boundary",
			entry: entryPublishedAt(now.Add(-2*time.Hour + time.Second)),
			want:  true,
		},
		{
			name:  "entry just outside boundary",
			entry: entryPublishedAt(now.Add(-2*time.Hour - time.Second)),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsRecent(tt.entry, now); got != tt.want {
				t.Errorf("IsRecent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_MatchKeyword(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		entry    news.FeedEntry
		want     string
		wantOK   bool
	}{
		{
			name:     "keyword in title",
			keywords: []string{"breach"},
			entry:    news.FeedEntry{Title: "Major data breach at bank", Summary: ""},
			want:     "breach",
			wantOK:   true,
		},
		{
			name:     "keyword in summary",
			keywords: []string{"hacked"},
			entry:    news.FeedEntry{Title: "Security news", Summary: "Systems were hacked overnight"},
			want:     "hacked",
			wantOK:   true,
		},
		{
			name:     "match is case-insensitive",
			keywords: []string{"ransomware"},
			entry:    news.FeedEntry{Title: "RANSOMWARE strikes again"},
			want:     "ransomware",
			wantOK:   true,
		},
		{
			name:     "no keyword matches",
			keywords: []string{"breach", "ransomware"},
			entry:    news.FeedEntry{Title: "Weather today", Summary: "Sunny skies expected"},
			wantOK:   false,
		},
		{
			name: "first configured keyword wins",
			// Порядок задаёт конфигурация, а не положение слова в тексте
			keywords: []string{"breach", "exploit"},
			entry:    news.FeedEntry{Title: "exploit and breach found"},
			want:     "breach",
			wantOK:   true,
		},
		{
			name:     "empty fields do not fail",
			keywords: []string{"breach"},
			entry:    news.FeedEntry{},
			wantOK:   false,
		},
		{
			name:     "empty keyword is skipped",
			keywords: []string{"", "vuln"},
			entry:    news.FeedEntry{Title: "New vuln disclosed"},
			want:     "vuln",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.keywords, 2)
			got, ok := f.MatchKeyword(tt.entry)
			if ok != tt.wantOK {
				t.Fatalf("MatchKeyword() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("MatchKeyword() = %q, want %q", got, tt.want)
			}
		})
	}
}
