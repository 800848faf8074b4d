package venue

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/dom"
)

func TestFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want models.Venue
	}{
		{
			name: "city and mensa",
			url:  "https://www.mensaplan.de/amberg/mensa-amberg/index.html",
			want: models.Venue{City: "Amberg", Name: "Amberg"},
		},
		{
			name: "city, university and mensa",
			url:  "https://www.mensaplan.de/mainz/uni-mainz/mensa-georg-forster/index.html",
			want: models.Venue{City: "Mainz", Institution: "Uni Mainz", Name: "Georg Forster"},
		},
		{
			name: "unprefixed venue name",
			url:  "https://www.mensaplan.de/mainz/uni-mainz/zentralmensa/index.html",
			want: models.Venue{City: "Mainz", Institution: "Uni Mainz", Name: "Zentralmensa"},
		},
		{
			name: "institution page",
			url:  "https://www.mensaplan.de/bad-honnef/iubh/index.html",
			want: models.Venue{City: "Bad Honnef", Institution: "Iubh", Name: "Iubh"},
		},
		{
			name: "city page only",
			url:  "https://www.mensaplan.de/mainz/index.html",
			want: models.Venue{City: "Mainz"},
		},
		{
			name: "root",
			url:  "https://www.mensaplan.de/",
			want: models.Venue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromURL(tt.url)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromURL(%q) mismatch (-want +got):\n%s", tt.url, diff)
			}
		})
	}
}

func TestFromPage(t *testing.T) {
	doc, err := dom.ParseString(`<html><head><title>Mensa Campus Süd</title></head><body><h1>Ignored</h1></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	untitled, err := dom.ParseString(`<html><body><h1>Cafeteria Nord</h1></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	tests := []struct {
		name string
		url  string
		doc  *dom.Element
		want string
	}{
		{"url wins", "https://x.de/mainz/uni-mainz/zentralmensa/index.html", doc, "Zentralmensa"},
		{"title", "https://x.de/karlsruhe/index.html", doc, "Mensa Campus Süd"},
		{"h1", "https://x.de/karlsruhe/index.html", untitled, "Cafeteria Nord"},
		{"mensa segment", "https://x.de/trier/mensa-am-park/extra/index.html", nil, "Am Park"},
		{"last segment", "https://x.de/karlsruhe/index.html", nil, "Karlsruhe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromPage(tt.url, tt.doc).Name; got != tt.want {
				t.Errorf("FromPage().Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArchivePathRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		venue models.Venue
		path  string
	}{
		{
			name:  "with institution",
			venue: models.Venue{City: "Mainz", Institution: "Uni Mainz", Name: "Zentralmensa"},
			path:  filepath.Join("data", "Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08.html"),
		},
		{
			name:  "without institution",
			venue: models.Venue{City: "Amberg", Name: "Amberg"},
			path:  filepath.Join("data", "Amberg", "Amberg", "Amberg", "2025-09-08.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArchivePath("data", tt.venue, "2025-09-08")
			if got != tt.path {
				t.Errorf("ArchivePath() = %q, want %q", got, tt.path)
			}

			back := FromArchivePath(got)
			want := tt.venue
			want.CapturedOn = "2025-09-08"
			if diff := cmp.Diff(want, back); diff != "" {
				t.Errorf("FromArchivePath() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromArchivePathMirrorLayout(t *testing.T) {
	got := FromArchivePath(filepath.Join("www.mensaplan.de", "amberg", "mensa-amberg", "index.html"))
	want := models.Venue{City: "Amberg", Name: "Amberg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromArchivePath() mismatch (-want +got):\n%s", diff)
	}
}

func TestRank(t *testing.T) {
	names := []string{"Zentralmensa", "Mensa Georg Forster", "Cafeteria Nord", "Mensa am Park"}

	got := Rank("forster", names, DefaultThreshold)
	if len(got) == 0 || got[0].Index != 1 {
		t.Fatalf("Rank(forster) = %+v, want index 1 first", got)
	}

	got = Rank("zentral", names, DefaultThreshold)
	if len(got) == 0 || got[0].Index != 0 || got[0].Score != 1 {
		t.Errorf("Rank(zentral) = %+v, want exact substring hit on index 0", got)
	}

	got = Rank("Forstr", names, DefaultThreshold)
	if len(got) == 0 || got[0].Index != 1 {
		t.Errorf("Rank(Forstr) = %+v, want fuzzy hit on index 1", got)
	}

	if got := Rank("  ", names, DefaultThreshold); got != nil {
		t.Errorf("Rank(blank) = %+v, want nil", got)
	}
	if got := Rank("xyzzy", names, 0.95); len(got) != 0 {
		t.Errorf("Rank(xyzzy) = %+v, want no matches", got)
	}
}
