package models

import (
	"encoding/json"
	"testing"
)

func TestEmotion(t *testing.T) {
	for _, e := range Emotions {
		if !e.Known() {
			t.Errorf("%s should be known", e)
		}
	}

	for _, e := range []Emotion{"", "bored", "HAPPY"} {
		if e.Known() {
			t.Errorf("%q should not be known", e)
		}
	}
}

func TestRecommendationJSON(t *testing.T) {
	t.Run("empty tracks encode as array", func(t *testing.T) {
		data, err := json.Marshal(NewRecommendation(Sad, nil))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"emotion":"sad","tracks":[]}` {
			t.Errorf("unexpected JSON: %s", data)
		}
	})

	t.Run("track shape", func(t *testing.T) {
		track := Track{ID: "1", Name: "Song", Artists: "A, B", SpotifyURL: "https://open.spotify.com/track/1"}
		data, err := json.Marshal(track)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		want := `{"id":"1","name":"Song","artists":"A, B","album_cover":"","preview_url":null,"spotify_url":"https://open.spotify.com/track/1"}`
		if string(data) != want {
			t.Errorf("got %s\nwant %s", data, want)
		}
	})
}
