package youtube

import (
	"errors"
	"strings"
	"testing"

	yt "google.golang.org/api/youtube/v3"
)

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		link    string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/a_b-c_d-e_f", "a_b-c_d-e_f", false},
		{"https://www.youtube.com/watch?v=short", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := VideoIDFromURL(tt.link)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("VideoIDFromURL(%q) error = %v, want ErrInvalidURL", tt.link, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("VideoIDFromURL(%q) = %q, %v, want %q", tt.link, got, err, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Lecture 1: Intro to RL  ", "Lecture-1-Intro-to-RL"},
		{"강화학습 개론 (1/3)", "강화학습-개론-13"},
		{"a\t\tb\nc", "a-b-c"},
		{"under_score-dash", "under_score-dash"},
		{"!!!", ""},
		{strings.Repeat("가", 130), strings.Repeat("가", 120)},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		iso  string
		want string
	}{
		{"PT1H2M3S", "01:02:03"},
		{"PT45S", "00:00:45"},
		{"PT10M", "00:10:00"},
		{"PT2H", "02:00:00"},
		{"PT90M", "01:30:00"},
		{"PT0S", "00:00:00"},
		{"P1DT2H", "00:00:00"},
		{"garbage", "00:00:00"},
		{"", "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.iso); got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.iso, got, tt.want)
		}
	}
}

func TestVideoFromAPI(t *testing.T) {
	tests := []struct {
		name      string
		in        *yt.Video
		wantField string
	}{
		{"no id", &yt.Video{}, "id"},
		{"no snippet", &yt.Video{Id: "v1", ContentDetails: &yt.VideoContentDetails{Duration: "PT1S"}}, "snippet"},
		{"no duration", &yt.Video{Id: "v1", Snippet: &yt.VideoSnippet{Title: "t"}}, "contentDetails.duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := videoFromAPI(tt.in)
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.wantField {
				t.Fatalf("videoFromAPI() error = %v, want field %q", err, tt.wantField)
			}
			if !errors.Is(err, ErrMissingField) {
				t.Error("FieldError should match ErrMissingField")
			}
		})
	}

	v, err := videoFromAPI(&yt.Video{
		Id:             "v1",
		Snippet:        &yt.VideoSnippet{Title: "Talk", PublishedAt: "2024-05-01T10:00:00Z"},
		ContentDetails: &yt.VideoContentDetails{Duration: "PT3M"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Video{ID: "v1", Title: "Talk", Duration: "PT3M", PublishedAt: "2024-05-01T10:00:00Z"}
	if v != want {
		t.Errorf("videoFromAPI() = %+v, want %+v", v, want)
	}
}
