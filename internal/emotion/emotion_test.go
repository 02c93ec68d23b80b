package emotion

import (
	"context"
	"image"
	"testing"

	"github.com/desertthunder/moodmix/internal/models"
)

func TestResolver(t *testing.T) {
	t.Run("known labels", func(t *testing.T) {
		r := NewResolver(nil)
		tc := map[models.Emotion]string{
			models.Happy:   "1u2zThsNr5yGIPvYYhffRa",
			models.Sad:     "7ymUBqQy9JAvuajmF7U2xh",
			models.Angry:   "0N7bTAuO8ejUjW2YkyZfRB",
			models.Neutral: "7EClwmhqu7mg4JvUI9z5DT",
		}
		for e, want := range tc {
			got, ok := r.Resolve(e)
			if !ok || got != want {
				t.Errorf("Resolve(%s) = %q, %v; want %q, true", e, got, ok, want)
			}
		}
	})

	t.Run("unknown labels", func(t *testing.T) {
		r := NewResolver(nil)
		for _, e := range []models.Emotion{"", "bored", "Happy"} {
			if id, ok := r.Resolve(e); ok {
				t.Errorf("Resolve(%q) = %q, expected no mapping", e, id)
			}
		}
	})

	t.Run("overrides", func(t *testing.T) {
		r := NewResolver(map[string]string{"happy": "custom", "bored": "ignored", "sad": ""})

		if id, _ := r.Resolve(models.Happy); id != "custom" {
			t.Errorf("expected override, got %q", id)
		}
		if id, _ := r.Resolve(models.Sad); id != DefaultPlaylists[models.Sad] {
			t.Errorf("empty override should keep default, got %q", id)
		}
		if _, ok := r.Resolve("bored"); ok {
			t.Error("override must not extend the label set")
		}
		if DefaultPlaylists[models.Happy] != "1u2zThsNr5yGIPvYYhffRa" {
			t.Error("overrides must not mutate DefaultPlaylists")
		}
	})
}

func TestLabel(t *testing.T) {
	if got := Label(nil); got != models.Neutral {
		t.Errorf("Label(nil) = %q, want neutral", got)
	}

	sad := "sad"
	if got := Label(&sad); got != models.Sad {
		t.Errorf("Label(sad) = %q", got)
	}

	empty := ""
	if got := Label(&empty); got != "" {
		t.Errorf("Label(\"\") = %q, want empty", got)
	}
}

func TestRandomDetector(t *testing.T) {
	t.Run("returns known labels", func(t *testing.T) {
		d := NewRandomDetector()
		frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for range 50 {
			e, err := d.Detect(context.Background(), frame)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !e.Known() {
				t.Fatalf("unexpected label %q", e)
			}
		}
	})

	t.Run("covers every label", func(t *testing.T) {
		next := 0
		d := &RandomDetector{intn: func(n int) int { v := next % n; next++; return v }}

		seen := map[models.Emotion]bool{}
		for range len(models.Emotions) {
			e, _ := d.Detect(context.Background(), nil)
			seen[e] = true
		}
		if len(seen) != len(models.Emotions) {
			t.Errorf("expected all labels, saw %v", seen)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewRandomDetector().Detect(ctx, nil); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
